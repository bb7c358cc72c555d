package types

import "fmt"

// Cell 离散网格上的整数坐标 (x, z)
// 网格只使用整数，不涉及浮点数
type Cell struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// Add 返回偏移后的格子
func (c Cell) Add(dx, dz int) Cell {
	return Cell{X: c.X + dx, Z: c.Z + dz}
}

// String 返回格子的字符串表示
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Size 占地尺寸（单位：格）
// W 沿 X 轴，H 沿 Z 轴
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Area 返回占地格子总数
func (s Size) Area() int {
	return s.W * s.H
}

// IsValid 宽高都必须为正数
func (s Size) IsValid() bool {
	return s.W > 0 && s.H > 0
}

// String 返回尺寸的字符串表示
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// WorldPos 连续的世界坐标
// 地面平面为 XZ，Y 为高度
type WorldPos struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// String 返回世界坐标的字符串表示
func (p WorldPos) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}
