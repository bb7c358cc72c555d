package game

import (
	"testing"
)

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.ShowGrid {
		t.Error("ShowGrid: got false, want true")
	}
	if !settings.ShowZones {
		t.Error("ShowZones: got false, want true")
	}
}

// TestSettingsNilGdata 测试降级模式：可以修改但不持久化
func TestSettingsNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if err := sm.SetFullscreen(true); err != nil {
		t.Fatalf("SetFullscreen() in degraded mode error: %v", err)
	}
	if shown, err := sm.ToggleGrid(); err != nil || shown {
		t.Fatalf("ToggleGrid() = %v, %v; want false, nil", shown, err)
	}

	// 重新加载恢复默认值
	if err := sm.Load(); err != nil {
		t.Fatalf("Load() in degraded mode error: %v", err)
	}
	if sm.GetSettings().Fullscreen || !sm.GetSettings().ShowGrid {
		t.Errorf("settings after Load() = %+v, want defaults", *sm.GetSettings())
	}
}

// TestSettingsLoadSave 测试设置写入 gdata 后重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := newTestGdataManager(t, "test_display_settings")

	sm1 := NewSettingsManager(m)
	if err := sm1.SetFullscreen(true); err != nil {
		t.Fatalf("SetFullscreen() error: %v", err)
	}
	if _, err := sm1.ToggleZones(); err != nil {
		t.Fatalf("ToggleZones() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	got := *sm2.GetSettings()
	want := DisplaySettings{Fullscreen: true, ShowGrid: true, ShowZones: false}
	if got != want {
		t.Errorf("reloaded settings = %+v, want %+v", got, want)
	}
}

// TestSettingsToggleTwice 测试切换两次回到原状态
func TestSettingsToggleTwice(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		name   string
		toggle func() (bool, error)
		read   func() bool
	}{
		{"网格线", sm.ToggleGrid, func() bool { return sm.GetSettings().ShowGrid }},
		{"区域", sm.ToggleZones, func() bool { return sm.GetSettings().ShowZones }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			first, _ := tt.toggle()
			second, _ := tt.toggle()
			if first == before || second != before || tt.read() != before {
				t.Errorf("toggle sequence %v -> %v -> %v", before, first, second)
			}
		})
	}
}
