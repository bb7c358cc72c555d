package config

import "testing"

// TestToolbarButtonRect 测试工具栏按钮布局
func TestToolbarButtonRect(t *testing.T) {
	tests := []struct {
		name  string
		index int
		wantY float64
	}{
		{"第一个按钮", 0, ToolbarY},
		{"第二个按钮", 1, ToolbarY + ToolbarButtonHeight + ToolbarButtonGap},
		{"负索引按第一个处理", -3, ToolbarY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := ToolbarButtonRect(tt.index)
			if x != ToolbarX || y != tt.wantY || w != ToolbarButtonWidth || h != ToolbarButtonHeight {
				t.Errorf("ToolbarButtonRect(%d) = (%v,%v,%v,%v)", tt.index, x, y, w, h)
			}
		})
	}
}

// TestToolbarButtonAt 测试按钮命中
func TestToolbarButtonAt(t *testing.T) {
	_, y1, _, _ := ToolbarButtonRect(1)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"第一个按钮", int(ToolbarX) + 5, int(ToolbarY) + 5, 0},
		{"第二个按钮", int(ToolbarX) + 5, int(y1) + 1, 1},
		{"按钮间隙", int(ToolbarX) + 5, int(ToolbarY + ToolbarButtonHeight + 1), -1},
		{"网格视口内", 100, 200, -1},
		{"超出按钮数量", int(ToolbarX) + 5, int(ToolbarY + 5*(ToolbarButtonHeight+ToolbarButtonGap)) + 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToolbarButtonAt(tt.x, tt.y, 3); got != tt.want {
				t.Errorf("ToolbarButtonAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
