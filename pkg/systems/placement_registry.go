package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/citybuilder/pkg/components"
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
	"github.com/google/uuid"
)

// PlacedInstance 一座已放置的建筑
// 由 PlacementRegistry 持有，移动时原地修改，实例ID保持不变
type PlacedInstance struct {
	Guid       string
	Category   string
	Definition *config.StructureDefinition
	Origin     types.Cell
	Direction  types.Direction
	Entity     ecs.EntityID
}

// Footprint 返回当前朝向下的占地尺寸
func (p *PlacedInstance) Footprint() types.Size {
	return utils.Footprint(p.Definition.Size, p.Direction)
}

// Record 返回实例的持久化记录
func (p *PlacedInstance) Record() game.PlacementRecord {
	return game.PlacementRecord{
		Guid:       p.Guid,
		Category:   p.Category,
		Direction:  p.Direction,
		Cell:       p.Origin,
		Identifier: p.Definition.ID,
	}
}

// PlacementRegistry 实例ID到运行时建筑的映射
// 负责创建、移动和销毁建筑实体，并调用经济效果和持久化协作者
//
// 不修改占用表，占用表由 PlacementSystem 与注册表同步维护
type PlacementRegistry struct {
	entityManager *ecs.EntityManager
	cellSize      float64
	economy       Economy     // 可为 nil
	store         RecordStore // 可为 nil
	newGuid       func() string

	instances map[string]*PlacedInstance
	order     []string // 放置顺序
}

// NewPlacementRegistry 创建建筑注册表
// 参数:
//   - em: 实体管理器
//   - cellSize: 格子边长，动态尺寸的建筑按此值统一缩放
//   - economy: 经济协作者，可为 nil
//   - store: 记录存储，可为 nil
//   - newGuid: 实例ID生成器，nil 时使用 uuid
func NewPlacementRegistry(em *ecs.EntityManager, cellSize float64, economy Economy, store RecordStore, newGuid func() string) *PlacementRegistry {
	if newGuid == nil {
		newGuid = uuid.NewString
	}
	return &PlacementRegistry{
		entityManager: em,
		cellSize:      cellSize,
		economy:       economy,
		store:         store,
		newGuid:       newGuid,
		instances:     make(map[string]*PlacedInstance),
	}
}

// transformFor 计算实例的世界变换
func (r *PlacementRegistry) transformFor(def *config.StructureDefinition, worldPos types.WorldPos, dir types.Direction) entities.StructureTransform {
	t := entities.StructureTransform{
		Position: worldPos,
		Degrees:  dir.Degrees(),
	}
	if def.DynamicSize {
		t.Scale = r.cellSize
	}
	return t
}

// PlaceNew 创建新建筑并生成实例ID
//
// 实例ID来自无冲突的生成器，重复意味着程序错误，直接 panic
//
// 返回:
//   - string: 新实例ID
//   - error: 定义为空时返回错误
func (r *PlacementRegistry) PlaceNew(def *config.StructureDefinition, worldPos types.WorldPos, cell types.Cell, dir types.Direction) (string, error) {
	if def == nil {
		return "", fmt.Errorf("%w: nil definition", ErrUnknownIdentifier)
	}

	guid := r.newGuid()
	if _, exists := r.instances[guid]; exists {
		panic(fmt.Sprintf("placement registry: generated guid %q collides with a live instance", guid))
	}

	inst := r.create(guid, def, worldPos, cell, dir)

	if r.store != nil {
		if err := r.store.AddRecord(inst.Record()); err != nil {
			log.Printf("[PlacementRegistry] 警告：保存记录 %s 失败: %v", guid, err)
		}
	}
	return guid, nil
}

// PlaceFromSaved 按存档记录重建建筑，沿用记录中的实例ID、格子和朝向
//
// 返回:
//   - string: 记录中的实例ID
//   - error: 实例ID为空时返回 ErrInvalidRecord，已存在时返回 ErrDuplicateGuid
func (r *PlacementRegistry) PlaceFromSaved(def *config.StructureDefinition, worldPos types.WorldPos, rec game.PlacementRecord) (string, error) {
	if def == nil {
		return "", fmt.Errorf("%w: nil definition", ErrUnknownIdentifier)
	}
	if rec.Guid == "" {
		return "", fmt.Errorf("%w: empty guid for %s at %v", ErrInvalidRecord, def.ID, rec.Cell)
	}
	if _, exists := r.instances[rec.Guid]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateGuid, rec.Guid)
	}

	r.create(rec.Guid, def, worldPos, rec.Cell, rec.Direction)
	return rec.Guid, nil
}

// SceneObjectGuid 由场景对象的名称、位置和朝向得到固定的实例ID
// 同一个场景对象每次启动得到相同的ID，存档据此识别已接管或已拆除的对象
func SceneObjectGuid(name string, pos types.WorldPos, dir types.Direction) string {
	key := fmt.Sprintf("citybuilder/scene-object/%s@%g,%g,%g/%s", name, pos.X, pos.Y, pos.Z, dir)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// Adopt 接管场景中已有的实体（按名称匹配成功的旧对象）
// 按网格重新对齐实体变换，并像新建筑一样写入存档，之后由存档记录重放
//
// 参数:
//   - guid: 实例ID，通常由 SceneObjectGuid 得到；为空时使用生成器
//
// 返回:
//   - error: 实体不存在时返回错误，实例ID已存在时返回 ErrDuplicateGuid
func (r *PlacementRegistry) Adopt(entity ecs.EntityID, guid string, def *config.StructureDefinition, worldPos types.WorldPos, cell types.Cell, dir types.Direction) (string, error) {
	if def == nil {
		return "", fmt.Errorf("%w: nil definition", ErrUnknownIdentifier)
	}
	if !r.entityManager.Exists(entity) {
		return "", fmt.Errorf("adopt: entity %d does not exist", entity)
	}

	if guid == "" {
		guid = r.newGuid()
	}
	if _, exists := r.instances[guid]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateGuid, guid)
	}

	ecs.RemoveComponent[*components.SceneObjectComponent](r.entityManager, entity)
	ecs.AddComponent(r.entityManager, entity, &components.PlacedStructureComponent{
		Guid:         guid,
		DefinitionID: def.ID,
		Category:     def.Category,
		Origin:       cell,
		Direction:    dir,
		Footprint:    utils.Footprint(def.Size, dir),
	})
	entities.ApplyStructureTransform(r.entityManager, entity, r.transformFor(def, worldPos, dir))

	inst := &PlacedInstance{
		Guid:       guid,
		Category:   def.Category,
		Definition: def,
		Origin:     cell,
		Direction:  dir,
		Entity:     entity,
	}
	r.register(inst)

	if r.store != nil {
		if err := r.store.AddRecord(inst.Record()); err != nil && !errors.Is(err, game.ErrRecordExists) {
			log.Printf("[PlacementRegistry] 警告：保存接管记录 %s 失败: %v", guid, err)
		}
	}
	return guid, nil
}

// create 创建实体并登记实例
func (r *PlacementRegistry) create(guid string, def *config.StructureDefinition, worldPos types.WorldPos, cell types.Cell, dir types.Direction) *PlacedInstance {
	entityID := entities.NewStructureEntity(r.entityManager, guid, def, cell, dir, r.transformFor(def, worldPos, dir))
	inst := &PlacedInstance{
		Guid:       guid,
		Category:   def.Category,
		Definition: def,
		Origin:     cell,
		Direction:  dir,
		Entity:     entityID,
	}
	r.register(inst)
	return inst
}

// register 登记实例：加入类别分组、保存映射、应用效果
func (r *PlacementRegistry) register(inst *PlacedInstance) {
	groupID := entities.GetOrCreateCategoryGroup(r.entityManager, inst.Category)
	if group, ok := ecs.GetComponent[*components.CategoryGroupComponent](r.entityManager, groupID); ok {
		group.AddMember(inst.Entity)
	}

	r.instances[inst.Guid] = inst
	r.order = append(r.order, inst.Guid)

	if r.economy != nil {
		r.economy.ApplyEffect(inst.Guid, inst.Definition)
	}
}

// Relocate 原地更新实例的格子、朝向和变换，实例ID不变
func (r *PlacementRegistry) Relocate(guid string, worldPos types.WorldPos, cell types.Cell, dir types.Direction) error {
	inst, ok := r.instances[guid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuid, guid)
	}

	inst.Origin = cell
	inst.Direction = dir

	if placed, ok := ecs.GetComponent[*components.PlacedStructureComponent](r.entityManager, inst.Entity); ok {
		placed.Origin = cell
		placed.Direction = dir
		placed.Footprint = inst.Footprint()
	}
	entities.ApplyStructureTransform(r.entityManager, inst.Entity, r.transformFor(inst.Definition, worldPos, dir))

	if r.store != nil {
		if err := r.store.UpdateRecord(inst.Record()); err != nil && !errors.Is(err, game.ErrRecordNotFound) {
			log.Printf("[PlacementRegistry] 警告：更新记录 %s 失败: %v", guid, err)
		}
	}
	return nil
}

// Remove 销毁实例
// 先撤销经济效果，再删除存档记录和映射，最后销毁实体
func (r *PlacementRegistry) Remove(guid string) error {
	inst, ok := r.instances[guid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuid, guid)
	}

	if r.economy != nil {
		r.economy.RemoveEffect(guid, inst.Definition)
	}

	if r.store != nil {
		if err := r.store.RemoveRecord(guid); err != nil && !errors.Is(err, game.ErrRecordNotFound) {
			log.Printf("[PlacementRegistry] 警告：删除记录 %s 失败: %v", guid, err)
		}
	}

	delete(r.instances, guid)
	for i, g := range r.order {
		if g == guid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	for _, groupID := range ecs.GetEntitiesWith1[*components.CategoryGroupComponent](r.entityManager) {
		if group, _ := ecs.GetComponent[*components.CategoryGroupComponent](r.entityManager, groupID); group.Category == inst.Category {
			group.RemoveMember(inst.Entity)
		}
	}
	r.entityManager.DestroyEntity(inst.Entity)

	log.Printf("[PlacementRegistry] 建筑已移除: %s (%s)", inst.Definition.ID, guid)
	return nil
}

// Get 按实例ID查找建筑
func (r *PlacementRegistry) Get(guid string) (*PlacedInstance, bool) {
	inst, ok := r.instances[guid]
	return inst, ok
}

// Has 检查实例ID是否存在
func (r *PlacementRegistry) Has(guid string) bool {
	_, ok := r.instances[guid]
	return ok
}

// Instances 按放置顺序返回所有建筑
func (r *PlacementRegistry) Instances() []*PlacedInstance {
	result := make([]*PlacedInstance, 0, len(r.order))
	for _, guid := range r.order {
		result = append(result, r.instances[guid])
	}
	return result
}

// Len 返回建筑数量
func (r *PlacementRegistry) Len() int {
	return len(r.instances)
}
