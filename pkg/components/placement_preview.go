package components

import "github.com/gonewx/citybuilder/pkg/types"

// PlacementPreviewComponent 标记实体为放置预览（跟随指针的半透明建筑）
// 预览从不写入占用表，放置状态结束时销毁
type PlacementPreviewComponent struct {
	// DefinitionID 预览的建筑定义
	DefinitionID string

	// Direction 当前朝向，旋转时更新
	Direction types.Direction

	// Footprint 当前朝向下的占地尺寸
	Footprint types.Size

	// Cell 当前悬停的原点格子
	Cell types.Cell

	// HasCell 是否已经有悬停格子（指针尚未进入网格时为 false）
	HasCell bool

	// Valid 当前格子能否放置，渲染时决定绿色或红色
	Valid bool

	// Alpha 透明度 (0.0-1.0)
	Alpha float64
}
