package utils

import (
	"fmt"
	"math"

	"github.com/gonewx/citybuilder/pkg/types"
)

// CoordinateGrid 世界坐标与离散格子坐标之间的转换
//
// 坐标约定：
//   - 格子 (0,0) 的左下角（最小 X、最小 Z）位于 Origin
//   - CellToWorld 统一返回格子的角点（最小 X、最小 Z），CellCenter 返回中心
//   - 有效格子范围为 [0,Width) x [0,Depth)
//
// 所有方法无副作用
type CoordinateGrid struct {
	CellSize float64        // 每格边长（世界单位）
	Origin   types.WorldPos // 格子 (0,0) 角点的世界坐标
	Width    int            // X 方向格数
	Depth    int            // Z 方向格数
}

// NewCoordinateGrid 创建坐标网格
// 参数:
//   - cellSize: 每格边长，必须为正数
//   - origin: 格子 (0,0) 角点的世界坐标
//   - width, depth: 网格在 X/Z 方向的格数，必须为正数
//
// 返回:
//   - *CoordinateGrid: 网格实例
//   - error: 参数非法时返回错误
func NewCoordinateGrid(cellSize float64, origin types.WorldPos, width, depth int) (*CoordinateGrid, error) {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("invalid cell size: %v", cellSize)
	}
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("invalid grid extents: %dx%d", width, depth)
	}
	return &CoordinateGrid{
		CellSize: cellSize,
		Origin:   origin,
		Width:    width,
		Depth:    depth,
	}, nil
}

// WorldToCell 将世界坐标转换为格子坐标（向下取整）
// 网格外的坐标同样返回对应的格子，由调用者配合 IsWithinBounds 判断
func (g *CoordinateGrid) WorldToCell(pos types.WorldPos) types.Cell {
	return types.Cell{
		X: int(math.Floor((pos.X - g.Origin.X) / g.CellSize)),
		Z: int(math.Floor((pos.Z - g.Origin.Z) / g.CellSize)),
	}
}

// CellToWorld 返回格子角点的世界坐标
func (g *CoordinateGrid) CellToWorld(cell types.Cell) types.WorldPos {
	return types.WorldPos{
		X: g.Origin.X + float64(cell.X)*g.CellSize,
		Y: g.Origin.Y,
		Z: g.Origin.Z + float64(cell.Z)*g.CellSize,
	}
}

// CellCenter 返回格子中心的世界坐标
func (g *CoordinateGrid) CellCenter(cell types.Cell) types.WorldPos {
	corner := g.CellToWorld(cell)
	corner.X += g.CellSize / 2
	corner.Z += g.CellSize / 2
	return corner
}

// ContainsCell 检查单个格子是否在网格范围内
func (g *CoordinateGrid) ContainsCell(cell types.Cell) bool {
	return cell.X >= 0 && cell.X < g.Width && cell.Z >= 0 && cell.Z < g.Depth
}

// IsWithinBounds 检查占地范围内的每个格子是否都在网格内
// 参数:
//   - origin: 占地起点格子（最小 X、最小 Z）
//   - size: 占地尺寸（已考虑朝向）
//
// 返回:
//   - bool: 所有格子都在范围内时返回 true；尺寸非法时返回 false
func (g *CoordinateGrid) IsWithinBounds(origin types.Cell, size types.Size) bool {
	if !size.IsValid() {
		return false
	}
	return origin.X >= 0 && origin.Z >= 0 &&
		origin.X+size.W <= g.Width && origin.Z+size.H <= g.Depth
}

// InstanceWorldPosition 计算建筑实例的世界坐标
// 起点格子角点加上旋转后的轴心偏移，使旋转后的模型仍覆盖 [origin, origin+footprint)
func (g *CoordinateGrid) InstanceWorldPosition(origin types.Cell, baseSize types.Size, dir types.Direction) types.WorldPos {
	pos := g.CellToWorld(origin)
	dx, dz := PivotOffset(baseSize, dir)
	pos.X += dx * g.CellSize
	pos.Z += dz * g.CellSize
	return pos
}
