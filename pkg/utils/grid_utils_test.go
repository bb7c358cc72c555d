package utils

import (
	"testing"

	"github.com/gonewx/citybuilder/pkg/types"
)

func newTestGrid(t *testing.T, cellSize float64) *CoordinateGrid {
	t.Helper()
	grid, err := NewCoordinateGrid(cellSize, types.WorldPos{}, 10, 8)
	if err != nil {
		t.Fatalf("NewCoordinateGrid() error: %v", err)
	}
	return grid
}

// TestNewCoordinateGridRejectsInvalid 测试非法参数
func TestNewCoordinateGridRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		cellSize float64
		width    int
		depth    int
	}{
		{"格子尺寸为0", 0, 10, 10},
		{"格子尺寸为负", -1, 10, 10},
		{"宽度为0", 1, 0, 10},
		{"深度为负", 1, 10, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCoordinateGrid(tt.cellSize, types.WorldPos{}, tt.width, tt.depth); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestWorldToCell 测试世界坐标向下取整到格子
func TestWorldToCell(t *testing.T) {
	grid := newTestGrid(t, 2)

	tests := []struct {
		name string
		pos  types.WorldPos
		want types.Cell
	}{
		{"原点", types.WorldPos{X: 0, Z: 0}, types.Cell{X: 0, Z: 0}},
		{"格子内部", types.WorldPos{X: 1.99, Z: 3.5}, types.Cell{X: 0, Z: 1}},
		{"格子边界属于下一格", types.WorldPos{X: 2, Z: 4}, types.Cell{X: 1, Z: 2}},
		{"负坐标向下取整", types.WorldPos{X: -0.1, Z: -2.5}, types.Cell{X: -1, Z: -2}},
		{"高度不影响格子", types.WorldPos{X: 5, Y: 100, Z: 5}, types.Cell{X: 2, Z: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.WorldToCell(tt.pos); got != tt.want {
				t.Errorf("WorldToCell(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

// TestCellToWorldRoundTrip 测试格子角点和中心换算回同一格子
func TestCellToWorldRoundTrip(t *testing.T) {
	grid, err := NewCoordinateGrid(1.5, types.WorldPos{X: -3, Y: 0.5, Z: 10}, 10, 10)
	if err != nil {
		t.Fatal(err)
	}

	for x := 0; x < grid.Width; x++ {
		for z := 0; z < grid.Depth; z++ {
			cell := types.Cell{X: x, Z: z}
			if got := grid.WorldToCell(grid.CellToWorld(cell)); got != cell {
				t.Fatalf("corner round trip %v -> %v", cell, got)
			}
			if got := grid.WorldToCell(grid.CellCenter(cell)); got != cell {
				t.Fatalf("center round trip %v -> %v", cell, got)
			}
		}
	}

	corner := grid.CellToWorld(types.Cell{X: 2, Z: 1})
	if corner.X != 0 || corner.Z != 11.5 || corner.Y != 0.5 {
		t.Errorf("CellToWorld((2,1)) = %v, want (0, 0.5, 11.5)", corner)
	}
}

// TestIsWithinBounds 测试占地边界检查
func TestIsWithinBounds(t *testing.T) {
	grid := newTestGrid(t, 1) // 10 x 8

	tests := []struct {
		name   string
		origin types.Cell
		size   types.Size
		want   bool
	}{
		{"左下角单格", types.Cell{X: 0, Z: 0}, types.Size{W: 1, H: 1}, true},
		{"铺满整个网格", types.Cell{X: 0, Z: 0}, types.Size{W: 10, H: 8}, true},
		{"右上角刚好贴边", types.Cell{X: 8, Z: 6}, types.Size{W: 2, H: 2}, true},
		{"X 方向越界", types.Cell{X: 9, Z: 0}, types.Size{W: 2, H: 1}, false},
		{"Z 方向越界", types.Cell{X: 0, Z: 7}, types.Size{W: 1, H: 2}, false},
		{"负起点", types.Cell{X: -1, Z: 0}, types.Size{W: 2, H: 1}, false},
		{"非法尺寸", types.Cell{X: 0, Z: 0}, types.Size{W: 0, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.IsWithinBounds(tt.origin, tt.size); got != tt.want {
				t.Errorf("IsWithinBounds(%v, %v) = %v, want %v", tt.origin, tt.size, got, tt.want)
			}
		})
	}
}

// TestInstanceWorldPosition 测试旋转后实例位置包含轴心偏移
func TestInstanceWorldPosition(t *testing.T) {
	grid := newTestGrid(t, 2)
	base := types.Size{W: 2, H: 1}

	got := grid.InstanceWorldPosition(types.Cell{X: 1, Z: 1}, base, types.DirectionUp)
	// 角点 (2,2) + 偏移 (2,1)*2
	if got.X != 6 || got.Z != 4 {
		t.Errorf("InstanceWorldPosition = %v, want (6, 0, 4)", got)
	}
}
