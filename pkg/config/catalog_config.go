package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gonewx/citybuilder/pkg/types"
	"gopkg.in/yaml.v3"
)

// StructureDefinition 建筑定义（只读）
type StructureDefinition struct {
	ID          string         `yaml:"id"`          // 定义ID，如 "house"
	Name        string         `yaml:"name"`        // 显示名称，场景对象按此名称匹配，默认与 ID 相同
	Size        types.Size     `yaml:"size"`        // 默认朝向下的占地尺寸，默认 1x1
	Cost        int            `yaml:"cost"`        // 建造花费
	Category    string         `yaml:"category"`    // 类别，每个类别一张占用表，默认 "Building"
	DynamicSize bool           `yaml:"dynamicSize"` // 是否按格子尺寸统一缩放模型
	Unique      bool           `yaml:"unique"`      // 是否同时最多只能存在一座
	Effects     map[string]int `yaml:"effects"`     // 建成后的资源效果，如 power: -5（可选）
	Aliases     []string       `yaml:"aliases"`     // 场景对象的其他可识别名称（可选）
}

// CatalogConfig 建筑目录文件的结构
type CatalogConfig struct {
	Structures []StructureDefinition `yaml:"structures"`
}

// Catalog 从定义ID到建筑定义的只读查找表
type Catalog struct {
	definitions map[string]*StructureDefinition
	byName      map[string]*StructureDefinition
	order       []string
}

// LoadCatalog 从YAML文件加载建筑目录
// 参数：
//
//	filepath - 目录文件路径
//
// 返回：
//
//	*Catalog - 解析并验证后的目录
//	error - 文件读取、解析或验证失败时返回错误
func LoadCatalog(filepath string) (*Catalog, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", filepath, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", filepath, err)
	}
	return catalog, nil
}

// ParseCatalog 从YAML数据解析建筑目录
func ParseCatalog(data []byte) (*Catalog, error) {
	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return NewCatalog(cfg.Structures)
}

// NewCatalog 由定义列表构建目录
// 会为缺省字段设置默认值，并验证ID唯一、尺寸合法、花费非负
func NewCatalog(defs []StructureDefinition) (*Catalog, error) {
	c := &Catalog{
		definitions: make(map[string]*StructureDefinition, len(defs)),
		byName:      make(map[string]*StructureDefinition),
		order:       make([]string, 0, len(defs)),
	}

	for i := range defs {
		def := defs[i]
		applyDefinitionDefaults(&def)
		if err := validateDefinition(&def); err != nil {
			return nil, fmt.Errorf("structures[%d]: %w", i, err)
		}
		if _, exists := c.definitions[def.ID]; exists {
			return nil, fmt.Errorf("structures[%d]: duplicate id %q", i, def.ID)
		}

		stored := &def
		c.definitions[def.ID] = stored
		c.order = append(c.order, def.ID)

		for _, name := range append([]string{def.Name, def.ID}, def.Aliases...) {
			key := normalizeSceneName(name)
			if key == "" {
				continue
			}
			if other, taken := c.byName[key]; taken && other.ID != def.ID {
				return nil, fmt.Errorf("structures[%d]: name %q already used by %q", i, name, other.ID)
			}
			c.byName[key] = stored
		}
	}

	return c, nil
}

// applyDefinitionDefaults 为缺失的可选字段设置默认值
func applyDefinitionDefaults(def *StructureDefinition) {
	if def.Name == "" {
		def.Name = def.ID
	}
	if def.Size.W == 0 && def.Size.H == 0 {
		def.Size = types.Size{W: 1, H: 1}
	}
	if def.Category == "" {
		def.Category = DefaultCategory
	}
}

// validateDefinition 验证单个建筑定义
func validateDefinition(def *StructureDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !def.Size.IsValid() {
		return fmt.Errorf("%s: size must be positive, got %v", def.ID, def.Size)
	}
	if def.Cost < 0 {
		return fmt.Errorf("%s: cost cannot be negative, got %d", def.ID, def.Cost)
	}
	return nil
}

// GetDefinition 按ID查找建筑定义
func (c *Catalog) GetDefinition(id string) (*StructureDefinition, bool) {
	def, ok := c.definitions[id]
	return def, ok
}

// ResolveByName 按场景对象名称查找建筑定义
// 名称不区分大小写，忽略引擎附加的 "(Clone)" 和 " (3)" 之类的后缀
func (c *Catalog) ResolveByName(name string) (*StructureDefinition, bool) {
	def, ok := c.byName[normalizeSceneName(name)]
	return def, ok
}

// Definitions 按文件中的顺序返回所有定义
func (c *Catalog) Definitions() []*StructureDefinition {
	result := make([]*StructureDefinition, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.definitions[id])
	}
	return result
}

// Categories 返回目录中出现的全部类别（排序）
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	for _, def := range c.definitions {
		seen[def.Category] = true
	}
	result := make([]string, 0, len(seen))
	for category := range seen {
		result = append(result, category)
	}
	sort.Strings(result)
	return result
}

// Len 返回定义数量
func (c *Catalog) Len() int {
	return len(c.order)
}

var sceneNameSuffix = regexp.MustCompile(`(\s*\(clone\)|\s*\(\d+\))+$`)

// normalizeSceneName 统一名称格式：小写、去空白、去掉复制后缀
func normalizeSceneName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = sceneNameSuffix.ReplaceAllString(n, "")
	return strings.TrimSpace(n)
}
