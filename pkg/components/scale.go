package components

// ScaleComponent 存储实体级别的缩放因子
// 动态尺寸的建筑按格子尺寸统一缩放，三个轴取相同值
//
// 1.0 = 原始大小
type ScaleComponent struct {
	ScaleX float64
	ScaleY float64
	ScaleZ float64
}

// Uniform 返回统一缩放的组件
func Uniform(factor float64) *ScaleComponent {
	return &ScaleComponent{ScaleX: factor, ScaleY: factor, ScaleZ: factor}
}
