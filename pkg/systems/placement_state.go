package systems

import (
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/types"
)

// StateKind 交互状态的种类
type StateKind int

const (
	// StateNone 没有激活的状态
	StateNone StateKind = iota
	// StatePlacing 放置新建筑
	StatePlacing
	// StateRemoving 拆除某个类别的建筑
	StateRemoving
	// StateRemovingAll 拆除所有类别的建筑
	StateRemovingAll
	// StateMoving 移动一座已有建筑
	StateMoving
	// StateLoadingSaved 启动时重放存档记录
	StateLoadingSaved
)

// String 返回状态名称
func (k StateKind) String() string {
	switch k {
	case StatePlacing:
		return "Placing"
	case StateRemoving:
		return "Removing"
	case StateRemovingAll:
		return "RemovingAll"
	case StateMoving:
		return "Moving"
	case StateLoadingSaved:
		return "LoadingSaved"
	default:
		return "None"
	}
}

// ActionResult OnAction 的结果
type ActionResult struct {
	// Committed 是否修改了占用表
	Committed bool
	// Done 状态要求 PlacementSystem 在本次操作后结束它
	Done bool
}

// PlacementState 一种交互状态
// 状态之间不直接切换，所有切换都由 PlacementSystem 完成
type PlacementState interface {
	Kind() StateKind
	// OnAction 在格子上执行主操作（点击）
	OnAction(cell types.Cell) ActionResult
	// UpdateState 悬停格子变化时调用
	UpdateState(cell types.Cell)
	// OnRotation 旋转输入
	OnRotation()
	// EndState 状态结束时清理（只清理状态自身的临时对象）
	EndState()
	// Subscriptions 状态需要的输入信号
	Subscriptions() []types.InputEvent
}

// previewer 带预览实体的状态
type previewer interface {
	previewEntity() ecs.EntityID
}
