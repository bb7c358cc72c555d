package config

// 网格与场景默认值
// 场景配置缺省字段时使用这些值
const (
	// DefaultCellSize 每格边长（世界单位）
	DefaultCellSize = 1.0

	// DefaultGridWidth 网格 X 方向格数
	DefaultGridWidth = 20

	// DefaultGridDepth 网格 Z 方向格数
	DefaultGridDepth = 20

	// DefaultCategory 未指定类别的建筑归入此类别
	DefaultCategory = "Building"

	// DefaultInitialMoney 场景未配置初始资金时的默认值
	DefaultInitialMoney = 1000
)
