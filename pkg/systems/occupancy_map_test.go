package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

func newTestOccupancy() *OccupancyMap {
	return NewOccupancyMap("Building", types.Cell{}, types.Size{W: 10, H: 10})
}

// TestOccupancyMapAdd 测试写入占地
func TestOccupancyMapAdd(t *testing.T) {
	m := newTestOccupancy()

	if err := m.Add(types.Cell{X: 0, Z: 0}, types.Size{W: 2, H: 1}, "house", "g1"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	for _, cell := range []types.Cell{{X: 0, Z: 0}, {X: 1, Z: 0}} {
		guid, ok := m.GetGuid(cell)
		if !ok || guid != "g1" {
			t.Errorf("GetGuid(%v) = %q, %v; want g1", cell, guid, ok)
		}
	}
	if _, ok := m.GetGuid(types.Cell{X: 2, Z: 0}); ok {
		t.Error("cell (2,0) should be free")
	}

	entry, ok := m.Entry(types.Cell{X: 1, Z: 0})
	if !ok || entry.Origin != (types.Cell{}) || entry.Size != (types.Size{W: 2, H: 1}) || entry.Identifier != "house" {
		t.Errorf("Entry((1,0)) = %+v", entry)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

// TestOccupancyMapAddRejectsWithoutMutation 测试非法写入返回错误且不修改占用表
func TestOccupancyMapAddRejectsWithoutMutation(t *testing.T) {
	m := newTestOccupancy()
	if err := m.Add(types.Cell{X: 4, Z: 4}, types.Size{W: 2, H: 2}, "university", "u1"); err != nil {
		t.Fatal(err)
	}
	before := m.OccupiedCells()

	tests := []struct {
		name   string
		origin types.Cell
		size   types.Size
		guid   string
		want   error
	}{
		{"部分重叠", types.Cell{X: 3, Z: 3}, types.Size{W: 2, H: 2}, "x1", ErrCellOccupied},
		{"超出右边界", types.Cell{X: 9, Z: 0}, types.Size{W: 2, H: 1}, "x2", ErrOutOfBounds},
		{"负坐标", types.Cell{X: -1, Z: 0}, types.Size{W: 1, H: 1}, "x3", ErrOutOfBounds},
		{"非法尺寸", types.Cell{X: 0, Z: 0}, types.Size{W: 0, H: 1}, "x4", ErrOutOfBounds},
		{"重复实例ID", types.Cell{X: 0, Z: 0}, types.Size{W: 1, H: 1}, "u1", ErrDuplicateGuid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Add(tt.origin, tt.size, "road", tt.guid)
			if !errors.Is(err, tt.want) {
				t.Errorf("Add() error = %v, want %v", err, tt.want)
			}
			if !sameCells(before, m.OccupiedCells()) {
				t.Error("rejected Add must not mutate the map")
			}
		})
	}
}

// TestOccupancyMapRemoveObjectPositions 测试从任意格子移除整个占地
func TestOccupancyMapRemoveObjectPositions(t *testing.T) {
	size := types.Size{W: 3, H: 2}
	origin := types.Cell{X: 2, Z: 5}

	for _, cell := range utils.FootprintCells(origin, size) {
		t.Run(cell.String(), func(t *testing.T) {
			m := newTestOccupancy()
			if err := m.Add(origin, size, "mall", "m1"); err != nil {
				t.Fatal(err)
			}
			if err := m.Add(types.Cell{X: 0, Z: 0}, types.Size{W: 1, H: 1}, "road", "r1"); err != nil {
				t.Fatal(err)
			}

			removed, ok := m.RemoveObjectPositions(cell)
			if !ok || removed.Guid != "m1" {
				t.Fatalf("RemoveObjectPositions(%v) = %+v, %v", cell, removed, ok)
			}

			cells := m.OccupiedCells()
			if len(cells) != 1 || cells[types.Cell{}] != "r1" {
				t.Errorf("remaining cells = %v, want only the road", cells)
			}
			if _, ok := m.EntryByGuid("m1"); ok {
				t.Error("entry should be gone")
			}
		})
	}
}

// TestOccupancyMapRemoveEmptyCell 测试移除空格子是空操作
func TestOccupancyMapRemoveEmptyCell(t *testing.T) {
	m := newTestOccupancy()
	if _, ok := m.RemoveObjectPositions(types.Cell{X: 3, Z: 3}); ok {
		t.Error("removing an empty cell should report false")
	}
}

// TestOccupancyMapPlaceRemoveRestores 测试放置后移除恢复原状态
func TestOccupancyMapPlaceRemoveRestores(t *testing.T) {
	m := newTestOccupancy()
	_ = m.Add(types.Cell{X: 0, Z: 0}, types.Size{W: 1, H: 1}, "road", "r1")
	_ = m.Add(types.Cell{X: 7, Z: 7}, types.Size{W: 2, H: 2}, "university", "u1")

	sizes := []types.Size{{W: 1, H: 1}, {W: 2, H: 1}, {W: 1, H: 3}, {W: 3, H: 2}}
	for _, size := range sizes {
		for x := 0; x < 10; x++ {
			for z := 0; z < 10; z++ {
				origin := types.Cell{X: x, Z: z}
				if !m.IsPlaceable(origin, size) {
					continue
				}
				before := m.OccupiedCells()
				if err := m.Add(origin, size, "probe", "probe"); err != nil {
					t.Fatalf("Add(%v, %v) after IsPlaceable: %v", origin, size, err)
				}
				m.RemoveObjectPositions(origin)
				if !sameCells(before, m.OccupiedCells()) {
					t.Fatalf("place/remove at %v size %v changed the map", origin, size)
				}
			}
		}
	}
}

// TestOccupancyMapIsPlaceableAgreesWithGetGuid 测试与已占用格子重叠的占地都不可放置
func TestOccupancyMapIsPlaceableAgreesWithGetGuid(t *testing.T) {
	m := newTestOccupancy()
	_ = m.Add(types.Cell{X: 3, Z: 3}, types.Size{W: 2, H: 3}, "school", "s1")
	_ = m.Add(types.Cell{X: 8, Z: 0}, types.Size{W: 1, H: 1}, "road", "r1")

	for w := 1; w <= 3; w++ {
		for h := 1; h <= 3; h++ {
			size := types.Size{W: w, H: h}
			for x := -1; x <= 10; x++ {
				for z := -1; z <= 10; z++ {
					origin := types.Cell{X: x, Z: z}
					overlaps := false
					for _, c := range utils.FootprintCells(origin, size) {
						if guid, ok := m.GetGuid(c); ok && guid != "" {
							overlaps = true
							break
						}
					}
					if overlaps && m.IsPlaceable(origin, size) {
						t.Fatalf("IsPlaceable(%v, %v) = true but footprint overlaps an occupied cell", origin, size)
					}
				}
			}
		}
	}
}

// TestOccupancyMapRelocate 测试移动条目
func TestOccupancyMapRelocate(t *testing.T) {
	m := newTestOccupancy()
	_ = m.Add(types.Cell{X: 0, Z: 0}, types.Size{W: 2, H: 1}, "house", "h1")
	_ = m.Add(types.Cell{X: 5, Z: 0}, types.Size{W: 1, H: 1}, "road", "r1")

	t.Run("与自身重叠", func(t *testing.T) {
		if !m.IsPlaceableIgnoring(types.Cell{X: 1, Z: 0}, types.Size{W: 2, H: 1}, "h1") {
			t.Fatal("overlap with own cells should be ignored")
		}
		if m.IsPlaceable(types.Cell{X: 1, Z: 0}, types.Size{W: 2, H: 1}) {
			t.Fatal("plain IsPlaceable must still see the house")
		}
		if err := m.Relocate("h1", types.Cell{X: 1, Z: 0}, types.Size{W: 2, H: 1}); err != nil {
			t.Fatalf("Relocate() error: %v", err)
		}
		if _, ok := m.GetGuid(types.Cell{X: 0, Z: 0}); ok {
			t.Error("old origin should be free")
		}
		if guid, _ := m.GetGuid(types.Cell{X: 2, Z: 0}); guid != "h1" {
			t.Errorf("GetGuid((2,0)) = %q, want h1", guid)
		}
	})

	t.Run("目标被占用", func(t *testing.T) {
		before := m.OccupiedCells()
		err := m.Relocate("h1", types.Cell{X: 4, Z: 0}, types.Size{W: 2, H: 1})
		if !errors.Is(err, ErrCellOccupied) {
			t.Errorf("Relocate onto road error = %v, want ErrCellOccupied", err)
		}
		if !sameCells(before, m.OccupiedCells()) {
			t.Error("failed Relocate must not mutate the map")
		}
	})

	t.Run("未知实例", func(t *testing.T) {
		if err := m.Relocate("nope", types.Cell{}, types.Size{W: 1, H: 1}); !errors.Is(err, ErrUnknownGuid) {
			t.Errorf("error = %v, want ErrUnknownGuid", err)
		}
	})
}

// TestOccupancyMapCategoryBounds 测试类别跟踪范围
func TestOccupancyMapCategoryBounds(t *testing.T) {
	m := NewOccupancyMap("Nature", types.Cell{X: 5, Z: 5}, types.Size{W: 3, H: 3})

	tests := []struct {
		name   string
		origin types.Cell
		size   types.Size
		want   bool
	}{
		{"范围内", types.Cell{X: 5, Z: 5}, types.Size{W: 3, H: 3}, true},
		{"范围左侧", types.Cell{X: 4, Z: 5}, types.Size{W: 1, H: 1}, false},
		{"跨越右边界", types.Cell{X: 7, Z: 5}, types.Size{W: 2, H: 1}, false},
		{"范围外的原点", types.Cell{X: 0, Z: 0}, types.Size{W: 1, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsPlaceable(tt.origin, tt.size); got != tt.want {
				t.Errorf("IsPlaceable(%v, %v) = %v, want %v", tt.origin, tt.size, got, tt.want)
			}
		})
	}

	lo, size := m.Bounds()
	if lo != (types.Cell{X: 5, Z: 5}) || size != (types.Size{W: 3, H: 3}) {
		t.Errorf("Bounds() = %v, %v", lo, size)
	}
}
