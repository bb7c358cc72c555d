package systems

import (
	"fmt"
	"testing"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// testCatalogYAML 测试用建筑目录
const testCatalogYAML = `structures:
  - id: house
    name: House
    size: {w: 2, h: 1}
    cost: 100
    effects: {population: 4}
  - id: university
    name: University
    size: {w: 2, h: 2}
    cost: 50
    unique: true
  - id: farm
    name: Farm
    size: {w: 1, h: 2}
    cost: 30
    effects: {food: 10}
  - id: road
    size: {w: 1, h: 1}
  - id: tree
    name: Oak Tree
    size: {w: 1, h: 1}
    cost: 5
    category: Nature
    dynamicSize: true
`

func newTestCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	catalog, err := config.ParseCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return catalog
}

// sequentialGuids 返回可预测的实例ID生成器
func sequentialGuids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("guid-%d", n)
	}
}

// fakeInput 可编程的输入源
type fakeInput struct {
	pos       types.WorldPos
	hasPos    bool
	triggered map[types.InputEvent]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{triggered: make(map[types.InputEvent]bool)}
}

func (f *fakeInput) PointerWorldPosition() (types.WorldPos, bool) { return f.pos, f.hasPos }

func (f *fakeInput) JustTriggered(ev types.InputEvent) bool { return f.triggered[ev] }

// hover 把指针移到格子中心（格子边长为 1、原点为 0）
func (f *fakeInput) hover(cell types.Cell) {
	f.pos = types.WorldPos{X: float64(cell.X) + 0.5, Z: float64(cell.Z) + 0.5}
	f.hasPos = true
}

// frame 触发一帧输入
func (f *fakeInput) frame(sys *PlacementSystem, events ...types.InputEvent) {
	for _, ev := range events {
		f.triggered[ev] = true
	}
	sys.Update(1.0 / 60)
	for _, ev := range events {
		delete(f.triggered, ev)
	}
}

// memoryStore 记录调用顺序的记录存储
type memoryStore struct {
	records []game.PlacementRecord
	log     *[]string
}

func (m *memoryStore) AddRecord(rec game.PlacementRecord) error {
	m.note("add " + rec.Guid)
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryStore) UpdateRecord(rec game.PlacementRecord) error {
	m.note("update " + rec.Guid)
	for i := range m.records {
		if m.records[i].Guid == rec.Guid {
			m.records[i] = rec
			return nil
		}
	}
	return game.ErrRecordNotFound
}

func (m *memoryStore) RemoveRecord(guid string) error {
	m.note("remove " + guid)
	for i := range m.records {
		if m.records[i].Guid == guid {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return game.ErrRecordNotFound
}

func (m *memoryStore) Records() []game.PlacementRecord {
	return append([]game.PlacementRecord(nil), m.records...)
}

func (m *memoryStore) note(s string) {
	if m.log != nil {
		*m.log = append(*m.log, s)
	}
}

// recordingEconomy 包装 CityState 并记录效果调用顺序
type recordingEconomy struct {
	*game.CityState
	log *[]string
}

func (e *recordingEconomy) ApplyEffect(guid string, def *config.StructureDefinition) {
	*e.log = append(*e.log, "apply "+guid)
	e.CityState.ApplyEffect(guid, def)
}

func (e *recordingEconomy) RemoveEffect(guid string, def *config.StructureDefinition) {
	*e.log = append(*e.log, "unapply "+guid)
	e.CityState.RemoveEffect(guid, def)
}

// recordingListener 记录放置、移动和拆除通知
type recordingListener struct {
	placed  []string
	moved   []string
	removed []string
}

func (l *recordingListener) OnStructurePlaced(inst *PlacedInstance) {
	l.placed = append(l.placed, inst.Definition.ID)
}

func (l *recordingListener) OnStructureMoved(inst *PlacedInstance, from types.Cell) {
	l.moved = append(l.moved, fmt.Sprintf("%s %v->%v", inst.Definition.ID, from, inst.Origin))
}

func (l *recordingListener) OnStructureRemoved(inst *PlacedInstance) {
	l.removed = append(l.removed, inst.Definition.ID)
}

// testEnv 测试用的放置引擎及其协作者
type testEnv struct {
	sys      *PlacementSystem
	em       *ecs.EntityManager
	city     *game.CityState
	store    RecordStore
	input    *fakeInput
	listener *recordingListener
}

// testOptions 可选的协作者
type testOptions struct {
	money      int
	store      RecordStore
	zones      ZoneChecker
	categories []config.CategoryConfig
	em         *ecs.EntityManager
}

// newTestEnv 创建 20x20、格子边长 1 的放置引擎
func newTestEnv(t *testing.T, opts testOptions) *testEnv {
	t.Helper()

	grid, err := utils.NewCoordinateGrid(1, types.WorldPos{}, 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	if opts.money == 0 {
		opts.money = 1000
	}
	if opts.store == nil {
		store, err := game.NewPlacementStore(nil, "")
		if err != nil {
			t.Fatal(err)
		}
		opts.store = store
	}
	if opts.categories == nil {
		opts.categories = []config.CategoryConfig{{Name: "Building"}, {Name: "Nature"}}
	}
	if opts.em == nil {
		opts.em = ecs.NewEntityManager()
	}

	env := &testEnv{
		em:       opts.em,
		city:     game.NewCityState(opts.money),
		store:    opts.store,
		input:    newFakeInput(),
		listener: &recordingListener{},
	}
	sys, err := NewPlacementSystem(&PlacementContext{
		Grid:          grid,
		Catalog:       newTestCatalog(t),
		Economy:       env.city,
		Zones:         opts.zones,
		Store:         env.store,
		EntityManager: env.em,
		Input:         env.input,
		Listeners:     []PlacementListener{env.listener},
		NewGuid:       sequentialGuids(),
	}, opts.categories)
	if err != nil {
		t.Fatalf("NewPlacementSystem() error: %v", err)
	}
	env.sys = sys
	return env
}

// place 进入放置状态并在格子上点击，返回是否成功放置
func (env *testEnv) place(t *testing.T, id string, cell types.Cell, rotations int) bool {
	t.Helper()
	if err := env.sys.StartPlacing(id); err != nil {
		t.Fatalf("StartPlacing(%s) error: %v", id, err)
	}
	for i := 0; i < rotations; i++ {
		env.sys.Dispatch(types.InputRotate)
	}
	before := env.sys.Registry().Len()
	env.input.hover(cell)
	env.input.frame(env.sys, types.InputClick)
	env.sys.Stop()
	return env.sys.Registry().Len() == before+1
}

// removeAt 进入拆除状态并在格子上点击
func (env *testEnv) removeAt(t *testing.T, category string, cell types.Cell) {
	t.Helper()
	if err := env.sys.StartRemoving(category); err != nil {
		t.Fatalf("StartRemoving(%s) error: %v", category, err)
	}
	env.input.hover(cell)
	env.input.frame(env.sys, types.InputClick)
	env.sys.Stop()
}

// occupancySnapshot 返回所有类别占用表的快照
func (env *testEnv) occupancySnapshot() map[string]map[types.Cell]string {
	snapshot := make(map[string]map[types.Cell]string)
	for _, name := range env.sys.Categories() {
		occ, _ := env.sys.Occupancy(name)
		snapshot[name] = occ.OccupiedCells()
	}
	return snapshot
}

// sameCells 比较两个占用快照
func sameCells(a, b map[types.Cell]string) bool {
	if len(a) != len(b) {
		return false
	}
	for cell, guid := range a {
		if b[cell] != guid {
			return false
		}
	}
	return true
}
