package systems

import (
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// Catalog 建筑目录（只读）
type Catalog interface {
	GetDefinition(id string) (*config.StructureDefinition, bool)
}

// NameResolver 按场景对象名称反查建筑定义
type NameResolver interface {
	ResolveByName(name string) (*config.StructureDefinition, bool)
}

// Economy 经济协作者
// ApplyEffect/RemoveEffect 对同一实例必须是幂等的
type Economy interface {
	SpendMoney(amount int) bool
	ApplyEffect(guid string, def *config.StructureDefinition)
	RemoveEffect(guid string, def *config.StructureDefinition)
}

// ZoneChecker 可建造区域判定，未提供时视为全部允许
type ZoneChecker interface {
	IsEligible(pos types.WorldPos) bool
}

// ZoneLocker 区域锁定（可选），建筑落成时锁定，拆除时释放
type ZoneLocker interface {
	LockZone(pos types.WorldPos)
	ReleaseZone(pos types.WorldPos)
}

// InputSource 输入源
type InputSource interface {
	// PointerWorldPosition 当前指针对应的世界坐标，指针不可用时返回 false
	PointerWorldPosition() (types.WorldPos, bool)
	// JustTriggered 输入信号是否在本帧刚刚触发
	JustTriggered(ev types.InputEvent) bool
}

// RecordStore 建筑记录的持久化协作者
type RecordStore interface {
	AddRecord(rec game.PlacementRecord) error
	UpdateRecord(rec game.PlacementRecord) error
	RemoveRecord(guid string) error
	Records() []game.PlacementRecord
}

// SeedMarker 记录场景初始建筑是否已经写入存档（可选）
// RecordStore 同时实现此接口时，初始建筑只在新存档中生成一次
type SeedMarker interface {
	IsSeeded() bool
	MarkSeeded() error
}

// PlacementListener 建筑放置/移动/拆除通知（如教学流程、音效）
// 只在玩家操作时触发，启动加载不通知
type PlacementListener interface {
	OnStructurePlaced(inst *PlacedInstance)
	// OnStructureMoved from 为移动前的原点格子
	OnStructureMoved(inst *PlacedInstance, from types.Cell)
	OnStructureRemoved(inst *PlacedInstance)
}

// PlacementContext 放置引擎的协作者集合
// 启动时构造一次，传给 NewPlacementSystem，之后不再修改
//
// 必需：Grid、Catalog、EntityManager
// 可选：其余字段为 nil 时使用宽松的默认行为
//   - Names 为 nil 时，如果 Catalog 实现了 NameResolver 则使用 Catalog
//   - Economy 为 nil 时建造免费，不计算效果
//   - Zones 为 nil 时所有位置都可建造；实现了 ZoneLocker 时同时负责区域锁定
//   - Store 为 nil 时不持久化
//   - Input 为 nil 时 Update 不读取指针和按键，只能通过 SetHoveredCell/Dispatch 驱动
//   - NewGuid 为 nil 时使用 uuid
type PlacementContext struct {
	Grid          *utils.CoordinateGrid
	Catalog       Catalog
	Names         NameResolver
	Economy       Economy
	Zones         ZoneChecker
	Store         RecordStore
	EntityManager *ecs.EntityManager
	Input         InputSource
	Listeners     []PlacementListener
	NewGuid       func() string
}
