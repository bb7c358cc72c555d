package systems

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gonewx/citybuilder/pkg/components"
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// PlacementSystem 放置引擎的总控
//
// 此系统负责：
//   - 持有每个类别的占用表、唯一建筑登记表和建筑注册表
//   - 持有当前唯一的交互状态（或没有），所有状态切换都经过这里
//   - 维护输入订阅表：状态切换时按差异增删订阅
//   - 每帧根据指针计算悬停格子，格子不变时跳过
//   - 启动时重放存档、生成场景初始建筑、接管旧场景对象
//
// 单线程使用，不加锁
type PlacementSystem struct {
	grid          *utils.CoordinateGrid
	catalog       Catalog
	names         NameResolver
	economy       Economy
	zones         ZoneChecker
	zoneLocker    ZoneLocker
	store         RecordStore
	entityManager *ecs.EntityManager
	input         InputSource
	listeners     []PlacementListener

	occupancy  map[string]*OccupancyMap
	categories []string // 排序后的类别名称
	unique     *UniqueRegistry
	registry   *PlacementRegistry

	active   PlacementState
	handlers map[types.InputEvent]func() // 输入订阅表

	hovered  types.Cell
	hasHover bool

	indicator  ecs.EntityID // 拆除指示器，首次使用时创建
	unresolved []string     // 启动时无法识别的场景对象名称
}

// InitReport 启动加载的结果
type InitReport struct {
	Loaded     int      // 从存档重放的建筑数
	Seeded     int      // 场景初始建筑数
	Reconciled int      // 接管的旧场景对象数
	Retired    int      // 存档中已被拆除、不再接管的旧场景对象数
	Skipped    []error  // 跳过的记录及原因
	Unresolved []string // 无法识别的场景对象名称
}

// NewPlacementSystem 创建放置引擎
//
// 参数:
//   - ctx: 协作者集合，Grid、Catalog、EntityManager 必须提供
//   - categories: 类别配置，为空时只有默认类别；Bounds 为 nil 的类别使用整个网格
//
// 返回:
//   - *PlacementSystem: 放置引擎实例
//   - error: 缺少必需协作者时返回 ErrMissingCollaborator，类别配置非法时返回错误
func NewPlacementSystem(ctx *PlacementContext, categories []config.CategoryConfig) (*PlacementSystem, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: context", ErrMissingCollaborator)
	}
	if ctx.Grid == nil {
		return nil, fmt.Errorf("%w: grid", ErrMissingCollaborator)
	}
	if ctx.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog", ErrMissingCollaborator)
	}
	if ctx.EntityManager == nil {
		return nil, fmt.Errorf("%w: entity manager", ErrMissingCollaborator)
	}

	s := &PlacementSystem{
		grid:          ctx.Grid,
		catalog:       ctx.Catalog,
		names:         ctx.Names,
		economy:       ctx.Economy,
		zones:         ctx.Zones,
		store:         ctx.Store,
		entityManager: ctx.EntityManager,
		input:         ctx.Input,
		listeners:     ctx.Listeners,
		occupancy:     make(map[string]*OccupancyMap),
		unique:        NewUniqueRegistry(),
		handlers:      make(map[types.InputEvent]func()),
	}
	if s.names == nil {
		if resolver, ok := ctx.Catalog.(NameResolver); ok {
			s.names = resolver
		}
	}
	if locker, ok := ctx.Zones.(ZoneLocker); ok {
		s.zoneLocker = locker
	}

	if len(categories) == 0 {
		categories = []config.CategoryConfig{{Name: config.DefaultCategory}}
	}
	for _, c := range categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category name is required")
		}
		if _, exists := s.occupancy[c.Name]; exists {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		lo, size := types.Cell{}, types.Size{W: s.grid.Width, H: s.grid.Depth}
		if b := c.Bounds; b != nil {
			lo, size = types.Cell{X: b.MinX, Z: b.MinZ}, types.Size{W: b.Width, H: b.Depth}
			if !s.grid.IsWithinBounds(lo, size) {
				return nil, fmt.Errorf("category %q bounds %v+%v exceed grid", c.Name, lo, size)
			}
		}
		s.occupancy[c.Name] = NewOccupancyMap(c.Name, lo, size)
		s.categories = append(s.categories, c.Name)
	}
	sort.Strings(s.categories)

	s.registry = NewPlacementRegistry(s.entityManager, s.grid.CellSize, s.economy, s.store, ctx.NewGuid)

	log.Printf("[PlacementSystem] 初始化完成: 网格 %dx%d，类别 %v", s.grid.Width, s.grid.Depth, s.categories)
	return s, nil
}

// ---------------------------------------------------------------------------
// 状态切换
// ---------------------------------------------------------------------------

// StartPlacing 进入放置状态
// 未知定义返回 ErrUnknownIdentifier；已建成的唯一建筑在创建状态之前就被拒绝，返回 ErrUniqueAlreadyBuilt
func (s *PlacementSystem) StartPlacing(identifier string) error {
	s.Stop()

	def, ok := s.catalog.GetDefinition(identifier)
	if !ok {
		log.Printf("[PlacementSystem] 未知建筑定义: %s", identifier)
		return fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}
	if def.Unique && s.unique.Contains(def.ID) {
		log.Printf("[PlacementSystem] 唯一建筑 %s 已经存在", def.ID)
		return fmt.Errorf("%w: %s", ErrUniqueAlreadyBuilt, def.ID)
	}
	occ, ok := s.occupancy[def.Category]
	if !ok {
		return fmt.Errorf("%w: %s (definition %s)", ErrUnknownCategory, def.Category, def.ID)
	}

	s.setState(newPlacingState(s, def, occ))
	return nil
}

// StartRemoving 进入某个类别的拆除状态
func (s *PlacementSystem) StartRemoving(category string) error {
	s.Stop()

	occ, ok := s.occupancy[category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	s.setState(newRemovingState(s, category, occ))
	return nil
}

// StartRemovingAll 进入拆除所有类别的状态
func (s *PlacementSystem) StartRemovingAll() {
	s.Stop()
	s.setState(newRemovingAllState(s))
}

// StartMoving 进入移动状态
func (s *PlacementSystem) StartMoving(guid string) error {
	s.Stop()

	inst, ok := s.registry.Get(guid)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuid, guid)
	}
	occ, ok := s.occupancy[inst.Category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, inst.Category)
	}
	s.setState(newMovingState(s, inst, occ))
	return nil
}

// Stop 结束当前状态并移除它的输入订阅
// 没有激活的状态时什么也不做
func (s *PlacementSystem) Stop() {
	if s.active == nil {
		return
	}
	st := s.active
	s.active = nil
	st.EndState()
	s.applySubscriptions(nil)
	log.Printf("[PlacementSystem] 结束状态 %v", st.Kind())
}

// setState 设置新状态并按差异更新订阅表
func (s *PlacementSystem) setState(st PlacementState) {
	s.active = st
	s.applySubscriptions(st.Subscriptions())
	log.Printf("[PlacementSystem] 进入状态 %v", st.Kind())

	// 立即同步当前悬停格子，预览无需等待指针移动
	if s.hasHover {
		st.UpdateState(s.hovered)
	}
}

// applySubscriptions 把订阅表更新为 required
func (s *PlacementSystem) applySubscriptions(required []types.InputEvent) {
	want := make(map[types.InputEvent]bool, len(required))
	for _, ev := range required {
		want[ev] = true
	}
	for ev := range s.handlers {
		if !want[ev] {
			delete(s.handlers, ev)
		}
	}
	for ev := range want {
		if _, installed := s.handlers[ev]; !installed {
			s.handlers[ev] = s.handlerFor(ev)
		}
	}
}

// handlerFor 返回输入信号对应的处理函数
func (s *PlacementSystem) handlerFor(ev types.InputEvent) func() {
	switch ev {
	case types.InputClick:
		return s.handleAction
	case types.InputRotate:
		return s.handleRotation
	default:
		return s.Stop
	}
}

// Subscriptions 返回当前订阅的输入信号（按 AllInputEvents 顺序）
func (s *PlacementSystem) Subscriptions() []types.InputEvent {
	result := make([]types.InputEvent, 0, len(s.handlers))
	for _, ev := range types.AllInputEvents {
		if _, ok := s.handlers[ev]; ok {
			result = append(result, ev)
		}
	}
	return result
}

// handleAction 把点击转发给当前状态
// 移动状态只执行一次；状态要求结束时结束它
func (s *PlacementSystem) handleAction() {
	st := s.active
	if st == nil || !s.hasHover {
		return
	}
	res := st.OnAction(s.hovered)
	if s.active == st && (res.Done || st.Kind() == StateMoving) {
		s.Stop()
	}
}

// handleRotation 把旋转输入转发给当前状态
func (s *PlacementSystem) handleRotation() {
	if s.active != nil {
		s.active.OnRotation()
	}
}

// ---------------------------------------------------------------------------
// 每帧更新
// ---------------------------------------------------------------------------

// Update 每帧调用
// 悬停格子未变化时跳过状态更新；然后按 AllInputEvents 顺序分发已订阅的输入
func (s *PlacementSystem) Update(deltaTime float64) {
	if s.input == nil {
		return
	}

	if pos, ok := s.input.PointerWorldPosition(); ok {
		s.SetHoveredCell(s.grid.WorldToCell(pos))
	}

	for _, ev := range types.AllInputEvents {
		if _, subscribed := s.handlers[ev]; subscribed && s.input.JustTriggered(ev) {
			s.Dispatch(ev)
		}
	}
}

// SetHoveredCell 设置悬停格子，格子变化时通知当前状态
func (s *PlacementSystem) SetHoveredCell(cell types.Cell) {
	if s.hasHover && cell == s.hovered {
		return
	}
	s.hovered, s.hasHover = cell, true
	if s.active != nil {
		s.active.UpdateState(cell)
	}
}

// Dispatch 触发一个输入信号，未订阅时返回 false
func (s *PlacementSystem) Dispatch(ev types.InputEvent) bool {
	handler, ok := s.handlers[ev]
	if !ok {
		return false
	}
	handler()
	return true
}

// ---------------------------------------------------------------------------
// 登记与拆除（状态共用）
// ---------------------------------------------------------------------------

// register 登记一座建筑：检查占用、创建实例、写入占用表、唯一登记、锁定区域
// place 负责在注册表中创建实例并返回实例ID
func (s *PlacementSystem) register(def *config.StructureDefinition, cell types.Cell, dir types.Direction, place func(pos types.WorldPos) (string, error)) (*PlacedInstance, error) {
	occ, ok := s.occupancy[def.Category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, def.Category)
	}
	fp := utils.Footprint(def.Size, dir)
	if !s.grid.IsWithinBounds(cell, fp) {
		return nil, fmt.Errorf("%w: %s at %v size %v", ErrOutOfBounds, def.ID, cell, fp)
	}
	if err := occ.check(cell, fp, ""); err != nil {
		return nil, err
	}
	if def.Unique && s.unique.Contains(def.ID) {
		return nil, fmt.Errorf("%w: %s", ErrUniqueAlreadyBuilt, def.ID)
	}

	guid, err := place(s.grid.InstanceWorldPosition(cell, def.Size, dir))
	if err != nil {
		return nil, err
	}
	if err := occ.Add(cell, fp, def.ID, guid); err != nil {
		_ = s.registry.Remove(guid)
		return nil, err
	}
	if def.Unique {
		s.unique.Add(def.ID, guid)
	}
	if s.zoneLocker != nil {
		s.zoneLocker.LockZone(s.footprintCenter(cell, fp))
	}

	inst, _ := s.registry.Get(guid)
	return inst, nil
}

// removeAt 拆除占用表中该格子上的建筑，格子为空时返回 false
func (s *PlacementSystem) removeAt(occ *OccupancyMap, cell types.Cell) bool {
	guid, ok := occ.GetGuid(cell)
	if !ok {
		return false
	}
	inst, ok := s.registry.Get(guid)
	if !ok {
		// 占用表中有条目但注册表中没有，只清理占用表
		log.Printf("[PlacementSystem] 警告：格子 %v 的 %s 不在注册表中", cell, guid)
		occ.RemoveObjectPositions(cell)
		return true
	}

	origin, fp := inst.Origin, inst.Footprint()
	occ.RemoveObjectPositions(cell)
	if err := s.registry.Remove(guid); err != nil {
		log.Printf("[PlacementSystem] 移除 %s 失败: %v", guid, err)
	}
	if inst.Definition.Unique {
		s.unique.Remove(inst.Definition.ID, guid)
	}
	if s.zoneLocker != nil {
		s.zoneLocker.ReleaseZone(s.footprintCenter(origin, fp))
	}

	for _, l := range s.listeners {
		l.OnStructureRemoved(inst)
	}
	return true
}

// notifyPlaced 通知监听者有新建筑落成
func (s *PlacementSystem) notifyPlaced(inst *PlacedInstance) {
	for _, l := range s.listeners {
		l.OnStructurePlaced(inst)
	}
}

// notifyMoved 通知监听者建筑已移动
func (s *PlacementSystem) notifyMoved(inst *PlacedInstance, from types.Cell) {
	for _, l := range s.listeners {
		l.OnStructureMoved(inst, from)
	}
}

// isZoneEligible 区域判定，使用占地中心点
func (s *PlacementSystem) isZoneEligible(cell types.Cell, fp types.Size) bool {
	if s.zones == nil {
		return true
	}
	return s.zones.IsEligible(s.footprintCenter(cell, fp))
}

// isZoneEligibleExcluding 区域判定，不计入 origin/fp 处已有建筑对区域容量的占用
// 移动建筑时使用，建筑在同一区域内移动不会因区域已满被拒绝
func (s *PlacementSystem) isZoneEligibleExcluding(cell types.Cell, fp types.Size, origin types.Cell, oldFp types.Size) bool {
	if s.zoneLocker == nil {
		return s.isZoneEligible(cell, fp)
	}
	old := s.footprintCenter(origin, oldFp)
	s.zoneLocker.ReleaseZone(old)
	defer s.zoneLocker.LockZone(old)
	return s.isZoneEligible(cell, fp)
}

// footprintCenter 返回占地矩形中心的世界坐标
func (s *PlacementSystem) footprintCenter(cell types.Cell, fp types.Size) types.WorldPos {
	pos := s.grid.CellToWorld(cell)
	pos.X += float64(fp.W) * s.grid.CellSize / 2
	pos.Z += float64(fp.H) * s.grid.CellSize / 2
	return pos
}

// updatePreview 更新预览实体的组件
func (s *PlacementSystem) updatePreview(id ecs.EntityID, def *config.StructureDefinition, dir types.Direction, cell types.Cell, hasCell, valid bool) {
	preview, ok := ecs.GetComponent[*components.PlacementPreviewComponent](s.entityManager, id)
	if !ok {
		return
	}
	preview.Direction = dir
	preview.Footprint = utils.Footprint(def.Size, dir)
	preview.Cell = cell
	preview.HasCell = hasCell
	preview.Valid = valid

	entities.ApplyStructureTransform(s.entityManager, id, entities.StructureTransform{
		Position: s.grid.InstanceWorldPosition(cell, def.Size, dir),
		Degrees:  dir.Degrees(),
	})
}

// updateRemovalIndicator 更新拆除指示器，首次使用时创建
func (s *PlacementSystem) updateRemovalIndicator(visible bool, category string, cell types.Cell, target *PlacedInstance) {
	if s.indicator == 0 {
		if !visible {
			return
		}
		s.indicator = entities.NewRemovalIndicatorEntity(s.entityManager, category)
	}
	indicator, ok := ecs.GetComponent[*components.RemovalIndicatorComponent](s.entityManager, s.indicator)
	if !ok {
		return
	}
	indicator.Visible = visible
	indicator.Category = category
	indicator.Cell = cell
	indicator.HighlightedEntity = 0
	if target != nil {
		indicator.HighlightedEntity = target.Entity
	}
}

// ---------------------------------------------------------------------------
// 启动加载
// ---------------------------------------------------------------------------

// Initialize 启动时调用一次
//  1. 通过 LoadingSaved 状态重放存档记录（损坏的记录跳过）
//  2. 生成场景声明的初始建筑（已存在的实例ID跳过，新存档中只生成一次）
//  3. 按名称接管没有实例ID的旧场景对象并写入存档，无法识别的对象保持未跟踪并记录下来
//
// 存档实现了 SeedMarker 且已经初始化过时，存档就是唯一来源：
// 不再生成初始建筑，存档中没有记录的旧场景对象视为已被拆除
func (s *PlacementSystem) Initialize(initial []config.InitialPlacement) *InitReport {
	report := &InitReport{}

	if s.store != nil {
		for _, rec := range s.store.Records() {
			if err := s.LoadRecord(rec); err != nil {
				log.Printf("[PlacementSystem] 跳过存档记录 %s: %v", rec.Guid, err)
				report.Skipped = append(report.Skipped, fmt.Errorf("record %s: %w", rec.Guid, err))
				continue
			}
			report.Loaded++
		}
	}

	marker, hasMarker := s.store.(SeedMarker)
	firstRun := !hasMarker || !marker.IsSeeded()

	if firstRun {
		s.seedInitialPlacements(initial, report)
	}
	s.reconcileSceneObjects(report, firstRun)

	if hasMarker && firstRun {
		if err := marker.MarkSeeded(); err != nil {
			log.Printf("[PlacementSystem] 警告：标记初始建筑失败: %v", err)
		}
	}

	report.Unresolved = s.UnresolvedSceneObjects()
	log.Printf("[PlacementSystem] 启动加载完成: 存档 %d，初始 %d，接管 %d，移除 %d，跳过 %d，未识别 %d",
		report.Loaded, report.Seeded, report.Reconciled, report.Retired, len(report.Skipped), len(report.Unresolved))
	return report
}

// LoadRecord 通过 LoadingSaved 状态登记一条存档记录
// 运行期间调用会先结束当前状态
func (s *PlacementSystem) LoadRecord(rec game.PlacementRecord) error {
	s.Stop()

	def, ok := s.catalog.GetDefinition(rec.Identifier)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIdentifier, rec.Identifier)
	}
	if rec.Category != "" && rec.Category != def.Category {
		log.Printf("[PlacementSystem] 记录 %s 的类别 %s 与定义 %s 不一致，使用 %s",
			rec.Guid, rec.Category, def.ID, def.Category)
	}
	rec.Category = def.Category

	st := newLoadingSavedState(s, def, rec)
	s.setState(st)
	st.OnAction(rec.Cell)
	s.Stop()

	return st.err
}

// seedInitialPlacements 生成场景初始建筑并写入存档
func (s *PlacementSystem) seedInitialPlacements(initial []config.InitialPlacement, report *InitReport) {
	for _, p := range initial {
		if s.registry.Has(p.Guid) {
			continue
		}
		rec := game.PlacementRecord{
			Guid:       p.Guid,
			Direction:  p.Direction,
			Cell:       p.Cell,
			Identifier: p.Definition,
		}
		if err := s.LoadRecord(rec); err != nil {
			log.Printf("[PlacementSystem] 跳过初始建筑 %s: %v", p.Guid, err)
			report.Skipped = append(report.Skipped, fmt.Errorf("initial %s: %w", p.Guid, err))
			continue
		}
		report.Seeded++

		if s.store != nil {
			inst, _ := s.registry.Get(p.Guid)
			if err := s.store.AddRecord(inst.Record()); err != nil {
				log.Printf("[PlacementSystem] 警告：保存初始建筑 %s 失败: %v", p.Guid, err)
			}
		}
	}
}

// reconcileSceneObjects 按名称接管旧场景对象
//
// 参数:
//   - adopt: 为 false 时只处理存档中已有记录的对象，其余可识别的对象视为已被拆除
func (s *PlacementSystem) reconcileSceneObjects(report *InitReport, adopt bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneObjectComponent](s.entityManager) {
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](s.entityManager, id)
		name := obj.Name

		p, err := s.resolveSceneObject(id, name)
		if err != nil {
			log.Printf("[PlacementSystem] 警告：场景对象 %q (ID: %d) 保持未跟踪: %v", name, id, err)
			s.unresolved = append(s.unresolved, name)
			continue
		}

		// 存档已经重放了这个对象（可能已被移动），场景中的副本不再需要
		if s.registry.Has(p.guid) {
			s.entityManager.DestroyEntity(id)
			continue
		}
		if !adopt {
			log.Printf("[PlacementSystem] 场景对象 %q 已从存档中拆除，不再接管", name)
			s.entityManager.DestroyEntity(id)
			report.Retired++
			continue
		}

		_, err = s.register(p.def, p.cell, p.dir, func(worldPos types.WorldPos) (string, error) {
			return s.registry.Adopt(id, p.guid, p.def, worldPos, p.cell, p.dir)
		})
		if err != nil {
			log.Printf("[PlacementSystem] 警告：场景对象 %q (ID: %d) 保持未跟踪: %v", name, id, err)
			s.unresolved = append(s.unresolved, name)
			continue
		}
		report.Reconciled++
	}
}

// sceneObjectPlacement 场景对象对齐到网格后的位置
type sceneObjectPlacement struct {
	guid string
	def  *config.StructureDefinition
	cell types.Cell
	dir  types.Direction
}

// resolveSceneObject 按名称反查定义，并把对象位置对齐到网格
// 对象位置是模型锚点：减去旋转偏移后四舍五入到最近的格子角点
func (s *PlacementSystem) resolveSceneObject(id ecs.EntityID, name string) (sceneObjectPlacement, error) {
	if s.names == nil {
		return sceneObjectPlacement{}, fmt.Errorf("%w: name resolver", ErrMissingCollaborator)
	}
	def, ok := s.names.ResolveByName(name)
	if !ok {
		return sceneObjectPlacement{}, fmt.Errorf("%w: no definition named %q", ErrUnknownIdentifier, name)
	}

	var pos types.WorldPos
	if p, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		pos = types.WorldPos{X: p.X, Y: p.Y, Z: p.Z}
	}
	dir := types.DirectionDown
	if r, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, id); ok {
		dir = types.Direction(int(math.Round(r.Degrees / 90))).Normalize()
	}

	dx, dz := utils.PivotOffset(def.Size, dir)
	cs := s.grid.CellSize
	cell := s.grid.WorldToCell(types.WorldPos{
		X: pos.X - dx*cs + cs/2,
		Z: pos.Z - dz*cs + cs/2,
	})

	return sceneObjectPlacement{
		guid: SceneObjectGuid(name, pos, dir),
		def:  def,
		cell: cell,
		dir:  dir,
	}, nil
}

// ---------------------------------------------------------------------------
// 查询
// ---------------------------------------------------------------------------

// ActiveStateKind 返回当前状态种类
func (s *PlacementSystem) ActiveStateKind() StateKind {
	if s.active == nil {
		return StateNone
	}
	return s.active.Kind()
}

// HoveredCell 返回当前悬停格子
func (s *PlacementSystem) HoveredCell() (types.Cell, bool) {
	return s.hovered, s.hasHover
}

// Instances 按放置顺序返回所有建筑
func (s *PlacementSystem) Instances() []*PlacedInstance {
	return s.registry.Instances()
}

// Instance 按实例ID查找建筑
func (s *PlacementSystem) Instance(guid string) (*PlacedInstance, bool) {
	return s.registry.Get(guid)
}

// InstanceAt 返回占用该格子的建筑（按类别名称顺序查找）
func (s *PlacementSystem) InstanceAt(cell types.Cell) (*PlacedInstance, bool) {
	for _, name := range s.categories {
		if guid, ok := s.occupancy[name].GetGuid(cell); ok {
			return s.registry.Get(guid)
		}
	}
	return nil, false
}

// Occupancy 返回类别的占用表
func (s *PlacementSystem) Occupancy(category string) (*OccupancyMap, bool) {
	occ, ok := s.occupancy[category]
	return occ, ok
}

// Categories 返回排序后的类别名称
func (s *PlacementSystem) Categories() []string {
	return append([]string(nil), s.categories...)
}

// UniqueRegistry 返回唯一建筑登记表
func (s *PlacementSystem) UniqueRegistry() *UniqueRegistry {
	return s.unique
}

// Registry 返回建筑注册表
func (s *PlacementSystem) Registry() *PlacementRegistry {
	return s.registry
}

// Preview 返回当前预览的副本，没有预览时返回 false
func (s *PlacementSystem) Preview() (components.PlacementPreviewComponent, bool) {
	p, ok := s.active.(previewer)
	if !ok {
		return components.PlacementPreviewComponent{}, false
	}
	preview, ok := ecs.GetComponent[*components.PlacementPreviewComponent](s.entityManager, p.previewEntity())
	if !ok {
		return components.PlacementPreviewComponent{}, false
	}
	return *preview, true
}

// RemovalIndicator 返回拆除指示器的副本
func (s *PlacementSystem) RemovalIndicator() (components.RemovalIndicatorComponent, bool) {
	if s.indicator == 0 {
		return components.RemovalIndicatorComponent{}, false
	}
	indicator, ok := ecs.GetComponent[*components.RemovalIndicatorComponent](s.entityManager, s.indicator)
	if !ok {
		return components.RemovalIndicatorComponent{}, false
	}
	return *indicator, true
}

// UnresolvedSceneObjects 返回启动时无法识别的场景对象名称
func (s *PlacementSystem) UnresolvedSceneObjects() []string {
	return append([]string(nil), s.unresolved...)
}
