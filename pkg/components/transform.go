package components

// PositionComponent 世界坐标位置
// 已放置建筑为其模型的锚点（原点格子角点加旋转枢轴偏移）
type PositionComponent struct {
	X float64
	Y float64
	Z float64
}

// RotationComponent 绕 Y 轴的旋转角度
type RotationComponent struct {
	// Degrees 角度（0/90/180/270），由朝向推导
	Degrees float64
}
