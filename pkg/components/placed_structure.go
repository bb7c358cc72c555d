package components

import (
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/types"
)

// PlacedStructureComponent 标识实体为已放置的建筑
// 包含实例ID、定义以及在网格中的位置和朝向
//
// 实体由 PlacementRegistry 创建和销毁，其他系统只读
type PlacedStructureComponent struct {
	// Guid 实例ID，整个会话内唯一，移动时保持不变
	Guid string
	// DefinitionID 建筑定义ID（如 "house"）
	DefinitionID string
	// Category 所属类别（对应一张占用表）
	Category string
	// Origin 占地矩形的原点格子（最小 x/z）
	Origin types.Cell
	// Direction 当前朝向
	Direction types.Direction
	// Footprint 当前朝向下的占地尺寸
	Footprint types.Size
}

// CategoryGroupComponent 类别分组
// 每个类别一个分组实体，记录属于该类别的建筑实体
type CategoryGroupComponent struct {
	Category string
	Members  []ecs.EntityID
}

// AddMember 将实体加入分组（已存在时忽略）
func (g *CategoryGroupComponent) AddMember(id ecs.EntityID) {
	for _, m := range g.Members {
		if m == id {
			return
		}
	}
	g.Members = append(g.Members, id)
}

// RemoveMember 将实体移出分组
func (g *CategoryGroupComponent) RemoveMember(id ecs.EntityID) {
	for i, m := range g.Members {
		if m == id {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return
		}
	}
}
