package entities

import (
	"log"

	"github.com/gonewx/citybuilder/pkg/components"
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// StructureTransform 建筑实例的世界变换
type StructureTransform struct {
	// Position 模型锚点的世界坐标
	Position types.WorldPos
	// Degrees 绕 Y 轴的旋转角度
	Degrees float64
	// Scale 统一缩放，0 表示不缩放
	Scale float64
}

// NewStructureEntity 创建已放置的建筑实体
// 添加位置、旋转（可选缩放）以及 PlacedStructureComponent
//
// 参数:
//   - em: 实体管理器
//   - guid: 实例ID
//   - def: 建筑定义
//   - origin: 占地原点格子
//   - dir: 朝向
//   - transform: 世界变换
//
// 返回:
//   - ecs.EntityID: 创建的建筑实体ID
func NewStructureEntity(em *ecs.EntityManager, guid string, def *config.StructureDefinition, origin types.Cell, dir types.Direction, transform StructureTransform) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PlacedStructureComponent{
		Guid:         guid,
		DefinitionID: def.ID,
		Category:     def.Category,
		Origin:       origin,
		Direction:    dir,
		Footprint:    utils.Footprint(def.Size, dir),
	})
	ApplyStructureTransform(em, entityID, transform)

	log.Printf("[StructureFactory] Created structure entity (ID: %d, Def: %s, Guid: %s) at %v facing %v",
		entityID, def.ID, guid, origin, dir)

	return entityID
}

// ApplyStructureTransform 写入（或覆盖）实体的位置、旋转和缩放组件
func ApplyStructureTransform(em *ecs.EntityManager, id ecs.EntityID, transform StructureTransform) {
	ecs.AddComponent(em, id, &components.PositionComponent{
		X: transform.Position.X,
		Y: transform.Position.Y,
		Z: transform.Position.Z,
	})
	ecs.AddComponent(em, id, &components.RotationComponent{Degrees: transform.Degrees})

	if transform.Scale > 0 {
		ecs.AddComponent(em, id, components.Uniform(transform.Scale))
	} else {
		ecs.RemoveComponent[*components.ScaleComponent](em, id)
	}
}

// NewPlacementPreviewEntity 创建放置预览实体
// 预览初始为默认朝向，尚无悬停格子
func NewPlacementPreviewEntity(em *ecs.EntityManager, def *config.StructureDefinition) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{})
	ecs.AddComponent(em, entityID, &components.RotationComponent{})
	ecs.AddComponent(em, entityID, &components.PlacementPreviewComponent{
		DefinitionID: def.ID,
		Direction:    types.DirectionDown,
		Footprint:    utils.Footprint(def.Size, types.DirectionDown),
		Alpha:        0.5, // 半透明效果
	})

	log.Printf("[StructureFactory] Created placement preview entity (ID: %d, Def: %s)", entityID, def.ID)
	return entityID
}

// NewRemovalIndicatorEntity 创建拆除指示器实体（初始隐藏）
func NewRemovalIndicatorEntity(em *ecs.EntityManager, category string) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.RemovalIndicatorComponent{Category: category})
	return entityID
}

// NewSceneObjectEntity 创建旧场景中预先摆放的对象
// 这类对象只有名称和变换，没有实例ID
func NewSceneObjectEntity(em *ecs.EntityManager, name string, pos types.WorldPos, dir types.Direction) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.SceneObjectComponent{Name: name})
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	ecs.AddComponent(em, entityID, &components.RotationComponent{Degrees: dir.Degrees()})

	return entityID
}

// GetOrCreateCategoryGroup 返回类别分组实体，不存在时创建
func GetOrCreateCategoryGroup(em *ecs.EntityManager, category string) ecs.EntityID {
	for _, id := range ecs.GetEntitiesWith1[*components.CategoryGroupComponent](em) {
		group, _ := ecs.GetComponent[*components.CategoryGroupComponent](em, id)
		if group.Category == category {
			return id
		}
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.CategoryGroupComponent{Category: category})
	log.Printf("[StructureFactory] Created category group %q (ID: %d)", category, entityID)
	return entityID
}
