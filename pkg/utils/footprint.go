package utils

import "github.com/gonewx/citybuilder/pkg/types"

// RotateXZ 将 (x,z) 偏移绕 Y 轴顺时针旋转 quarterTurns*90°
func RotateXZ(x, z, quarterTurns int) (rx, rz int) {
	switch quarterTurns & 3 {
	case 0:
		return x, z
	case 1:
		return z, -x
	case 2:
		return -x, -z
	default: // 3
		return -z, x
	}
}

// Footprint 计算定义在指定朝向下的占地尺寸
// 90°/270° 交换宽高，0°/180° 保持不变
func Footprint(baseSize types.Size, dir types.Direction) types.Size {
	if dir.SwapsAxes() {
		return types.Size{W: baseSize.H, H: baseSize.W}
	}
	return baseSize
}

// PivotOffset 计算旋转后模型原点相对占地起点的偏移（单位：格）
//
// 模型在本地坐标中占据 [0,W] x [0,H]，旋转后包围盒可能落到负半轴，
// 偏移量即把包围盒平移回 [0, footprint) 所需的距离：
//   - Down:  (0, 0)
//   - Left:  (0, W)
//   - Up:    (W, H)
//   - Right: (H, 0)
func PivotOffset(baseSize types.Size, dir types.Direction) (dx, dz float64) {
	turns := dir.QuarterTurns()
	corners := [4][2]int{{0, 0}, {baseSize.W, 0}, {0, baseSize.H}, {baseSize.W, baseSize.H}}

	minX, minZ := 0, 0
	for i, c := range corners {
		rx, rz := RotateXZ(c[0], c[1], turns)
		if i == 0 || rx < minX {
			minX = rx
		}
		if i == 0 || rz < minZ {
			minZ = rz
		}
	}
	return float64(-minX), float64(-minZ)
}

// FootprintCells 列出占地覆盖的全部格子（按 Z 再按 X 的顺序）
func FootprintCells(origin types.Cell, size types.Size) []types.Cell {
	if !size.IsValid() {
		return nil
	}
	cells := make([]types.Cell, 0, size.Area())
	for dz := 0; dz < size.H; dz++ {
		for dx := 0; dx < size.W; dx++ {
			cells = append(cells, origin.Add(dx, dz))
		}
	}
	return cells
}
