package config

import (
	"fmt"

	"github.com/gonewx/citybuilder/pkg/types"
	"gopkg.in/yaml.v3"
)

// ScenarioConfig 场景配置
// 描述网格、类别、初始资金、区域以及开局就存在的建筑
type ScenarioConfig struct {
	ID                string              `yaml:"id"`                // 场景ID，如 "tutorial"
	Name              string              `yaml:"name"`              // 场景名称
	Grid              GridConfig          `yaml:"grid"`              // 网格参数
	Categories        []CategoryConfig    `yaml:"categories"`        // 类别列表，默认只有 "Building"
	InitialMoney      int                 `yaml:"initialMoney"`      // 初始资金，默认 DefaultInitialMoney
	Zones             []ZoneConfig        `yaml:"zones"`             // 允许建造的区域（可选，为空表示全部允许）
	InitialPlacements []InitialPlacement  `yaml:"initialPlacements"` // 声明式初始建筑（可选）
	SceneObjects      []SceneObjectConfig `yaml:"sceneObjects"`      // 旧场景中按名称匹配的对象（可选）
}

// GridConfig 网格参数
type GridConfig struct {
	CellSize float64 `yaml:"cellSize"` // 每格边长，默认 1
	OriginX  float64 `yaml:"originX"`  // 格子 (0,0) 角点的世界X
	OriginZ  float64 `yaml:"originZ"`  // 格子 (0,0) 角点的世界Z
	Width    int     `yaml:"width"`    // X 方向格数，默认 20
	Depth    int     `yaml:"depth"`    // Z 方向格数，默认 20
}

// CategoryConfig 类别配置
type CategoryConfig struct {
	Name   string        `yaml:"name"`
	Bounds *BoundsConfig `yaml:"bounds"` // 该类别可用的格子范围，nil 表示整个网格
}

// BoundsConfig 格子矩形范围
type BoundsConfig struct {
	MinX  int `yaml:"minX"`
	MinZ  int `yaml:"minZ"`
	Width int `yaml:"width"`
	Depth int `yaml:"depth"`
}

// ZoneConfig 可建造区域（世界坐标矩形）
type ZoneConfig struct {
	ID       string  `yaml:"id"`
	X        float64 `yaml:"x"`
	Z        float64 `yaml:"z"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Capacity int     `yaml:"capacity"` // 区域内最多容纳的建筑数，0 表示不限
}

// InitialPlacement 声明式初始建筑
// 与存档记录一样带有固定的实例ID，开局时按可信来源直接登记
type InitialPlacement struct {
	Guid       string          `yaml:"guid"`
	Definition string          `yaml:"definition"`
	Cell       types.Cell      `yaml:"cell"`
	Direction  types.Direction `yaml:"direction"`
}

// SceneObjectConfig 旧场景中预先摆放的对象
// 没有实例ID，只能按名称反查建筑定义
type SceneObjectConfig struct {
	Name      string          `yaml:"name"`
	Position  types.WorldPos  `yaml:"position"`
	Direction types.Direction `yaml:"direction"`
}

// LoadScenarioConfig 从YAML文件加载场景配置
func LoadScenarioConfig(filepath string) (*ScenarioConfig, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", filepath, err)
	}

	scenario, err := ParseScenarioConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario in %s: %w", filepath, err)
	}
	return scenario, nil
}

// ParseScenarioConfig 从YAML数据解析场景配置
func ParseScenarioConfig(data []byte) (*ScenarioConfig, error) {
	var scenario ScenarioConfig
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	applyScenarioDefaults(&scenario)

	if err := validateScenarioConfig(&scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// applyScenarioDefaults 为缺失的可选字段设置默认值
func applyScenarioDefaults(s *ScenarioConfig) {
	if s.Grid.CellSize == 0 {
		s.Grid.CellSize = DefaultCellSize
	}
	if s.Grid.Width == 0 {
		s.Grid.Width = DefaultGridWidth
	}
	if s.Grid.Depth == 0 {
		s.Grid.Depth = DefaultGridDepth
	}
	if len(s.Categories) == 0 {
		s.Categories = []CategoryConfig{{Name: DefaultCategory}}
	}
	if s.InitialMoney == 0 {
		s.InitialMoney = DefaultInitialMoney
	}
}

// validateScenarioConfig 验证场景配置的完整性和合法性
func validateScenarioConfig(s *ScenarioConfig) error {
	if s.ID == "" {
		return fmt.Errorf("scenario ID is required")
	}
	if s.Grid.CellSize <= 0 {
		return fmt.Errorf("grid.cellSize must be positive, got %v", s.Grid.CellSize)
	}
	if s.Grid.Width <= 0 || s.Grid.Depth <= 0 {
		return fmt.Errorf("grid extents must be positive, got %dx%d", s.Grid.Width, s.Grid.Depth)
	}
	if s.InitialMoney < 0 {
		return fmt.Errorf("initialMoney cannot be negative, got %d", s.InitialMoney)
	}

	seen := make(map[string]bool)
	for i, c := range s.Categories {
		if c.Name == "" {
			return fmt.Errorf("categories[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("categories[%d]: duplicate category %q", i, c.Name)
		}
		seen[c.Name] = true

		if b := c.Bounds; b != nil {
			if b.Width <= 0 || b.Depth <= 0 {
				return fmt.Errorf("categories[%d]: bounds must be positive, got %dx%d", i, b.Width, b.Depth)
			}
			if b.MinX < 0 || b.MinZ < 0 || b.MinX+b.Width > s.Grid.Width || b.MinZ+b.Depth > s.Grid.Depth {
				return fmt.Errorf("categories[%d]: bounds exceed grid %dx%d", i, s.Grid.Width, s.Grid.Depth)
			}
		}
	}

	for i, z := range s.Zones {
		if z.Width <= 0 || z.Depth <= 0 {
			return fmt.Errorf("zones[%d]: size must be positive", i)
		}
		if z.Capacity < 0 {
			return fmt.Errorf("zones[%d]: capacity must not be negative", i)
		}
	}

	guids := make(map[string]bool)
	for i, p := range s.InitialPlacements {
		if p.Guid == "" {
			return fmt.Errorf("initialPlacements[%d]: guid is required", i)
		}
		if p.Definition == "" {
			return fmt.Errorf("initialPlacements[%d]: definition is required", i)
		}
		if guids[p.Guid] {
			return fmt.Errorf("initialPlacements[%d]: duplicate guid %q", i, p.Guid)
		}
		guids[p.Guid] = true
	}

	for i, o := range s.SceneObjects {
		if o.Name == "" {
			return fmt.Errorf("sceneObjects[%d]: name is required", i)
		}
	}

	return nil
}

// CategoryNames 返回场景中的类别名称（按配置顺序）
func (s *ScenarioConfig) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}
