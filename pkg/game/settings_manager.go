package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DisplaySettings 演示程序的显示设置
// 与存档槽位无关，所有槽位共用一份
type DisplaySettings struct {
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	ShowGrid   bool `yaml:"showGrid"`   // 是否绘制网格线
	ShowZones  bool `yaml:"showZones"`  // 是否绘制可建造区域
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		Fullscreen: false,
		ShowGrid:   true,
		ShowZones:  true,
	}
}

// SettingsManager 设置管理器
// 负责显示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	settings     *DisplaySettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// NewSettingsManager 创建设置管理器并加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败时记录警告并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时恢复默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 保存设置到 gdata，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DisplaySettings {
	return sm.settings
}

// SetFullscreen 设置全屏并保存
func (sm *SettingsManager) SetFullscreen(enabled bool) error {
	sm.settings.Fullscreen = enabled
	return sm.Save()
}

// ToggleGrid 切换网格线并保存，返回新的状态
func (sm *SettingsManager) ToggleGrid() (bool, error) {
	sm.settings.ShowGrid = !sm.settings.ShowGrid
	return sm.settings.ShowGrid, sm.Save()
}

// ToggleZones 切换区域显示并保存，返回新的状态
func (sm *SettingsManager) ToggleZones() (bool, error) {
	sm.settings.ShowZones = !sm.settings.ShowZones
	return sm.settings.ShowZones, sm.Save()
}
