package components

import (
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/types"
)

// RemovalIndicatorComponent 拆除指示器
// 作为单例组件挂载到一个专用实体上，拆除状态下高亮悬停的建筑
type RemovalIndicatorComponent struct {
	// Visible 是否显示（拆除状态结束时隐藏）
	Visible bool

	// Category 当前拆除的类别，空字符串表示所有类别
	Category string

	// Cell 当前悬停的格子
	Cell types.Cell

	// HighlightedEntity 当前高亮的建筑实体ID
	// 无悬停建筑时为 0
	HighlightedEntity ecs.EntityID
}
