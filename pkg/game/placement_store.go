package game

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrRecordExists 记录的实例ID已存在
	ErrRecordExists = errors.New("placement record already exists")
	// ErrRecordNotFound 找不到实例ID对应的记录
	ErrRecordNotFound = errors.New("placement record not found")
	// ErrInvalidSlot 存档槽位名称不合法
	ErrInvalidSlot = errors.New("invalid save slot name")
)

// PlacementRecord 一座建筑的持久化记录
// 这是放置引擎唯一需要保持兼容的外部格式
type PlacementRecord struct {
	Guid       string          `yaml:"guid"`       // 实例ID
	Category   string          `yaml:"category"`   // 类别
	Direction  types.Direction `yaml:"direction"`  // 朝向
	Cell       types.Cell      `yaml:"cell"`       // 占地原点格子
	Identifier string          `yaml:"identifier"` // 建筑定义ID
}

// placementSaveData 一个存档槽位的内容
type placementSaveData struct {
	Seeded  bool              `yaml:"seeded"`  // 场景初始建筑是否已经写入过
	Records []PlacementRecord `yaml:"records"` // 按放置顺序排列
}

// 存储路径常量
const (
	placementObject = "placements"
	// DefaultSlot 默认存档槽位
	DefaultSlot = "default"
)

var slotNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// PlacementStore 建筑记录存储
// 每次变更后立即写回 gdata，记录顺序与放置顺序一致
type PlacementStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
	slot         string         // 存档槽位，对应 gdata 的属性名
	data         placementSaveData
}

// NewPlacementStore 创建建筑记录存储并加载指定槽位
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//   - slot: 存档槽位名称，空字符串使用 DefaultSlot
//
// 返回：
//   - *PlacementStore: 存储实例
//   - error: 槽位名称不合法或存档损坏时返回错误
func NewPlacementStore(gdataManager *gdata.Manager, slot string) (*PlacementStore, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if !slotNamePattern.MatchString(slot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}

	ps := &PlacementStore{
		gdataManager: gdataManager,
		slot:         slot,
	}
	if err := ps.Load(); err != nil {
		return nil, err
	}
	return ps, nil
}

// Slot 返回存档槽位名称
func (ps *PlacementStore) Slot() string {
	return ps.slot
}

// Load 从 gdata 加载槽位内容
//
// 如果 gdataManager 为 nil 或槽位不存在，得到空记录
func (ps *PlacementStore) Load() error {
	ps.data = placementSaveData{}

	// 降级模式：无法持久化
	if ps.gdataManager == nil {
		return nil
	}

	if !ps.gdataManager.ObjectPropExists(placementObject, ps.slot) {
		return nil
	}

	data, err := ps.gdataManager.LoadObjectProp(placementObject, ps.slot)
	if err != nil {
		return fmt.Errorf("failed to load placements slot %s: %w", ps.slot, err)
	}

	var loaded placementSaveData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal placements slot %s: %w", ps.slot, err)
	}

	ps.data = loaded
	log.Printf("[PlacementStore] Loaded %d records from slot %s", len(ps.data.Records), ps.slot)
	return nil
}

// Save 保存槽位内容到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (ps *PlacementStore) Save() error {
	if ps.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&ps.data)
	if err != nil {
		return fmt.Errorf("failed to marshal placements: %w", err)
	}

	if err := ps.gdataManager.SaveObjectProp(placementObject, ps.slot, data); err != nil {
		return fmt.Errorf("failed to save placements slot %s: %w", ps.slot, err)
	}
	return nil
}

// AddRecord 追加一条记录并保存
func (ps *PlacementStore) AddRecord(rec PlacementRecord) error {
	if ps.indexOf(rec.Guid) >= 0 {
		return fmt.Errorf("%w: %s", ErrRecordExists, rec.Guid)
	}
	ps.data.Records = append(ps.data.Records, rec)
	return ps.Save()
}

// UpdateRecord 按实例ID替换记录并保存
func (ps *PlacementStore) UpdateRecord(rec PlacementRecord) error {
	i := ps.indexOf(rec.Guid)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.Guid)
	}
	ps.data.Records[i] = rec
	return ps.Save()
}

// RemoveRecord 按实例ID删除记录并保存
func (ps *PlacementStore) RemoveRecord(guid string) error {
	i := ps.indexOf(guid)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, guid)
	}
	ps.data.Records = append(ps.data.Records[:i], ps.data.Records[i+1:]...)
	return ps.Save()
}

// Records 返回所有记录的副本（按放置顺序）
func (ps *PlacementStore) Records() []PlacementRecord {
	result := make([]PlacementRecord, len(ps.data.Records))
	copy(result, ps.data.Records)
	return result
}

// IsSeeded 场景初始建筑是否已经写入过该槽位
func (ps *PlacementStore) IsSeeded() bool {
	return ps.data.Seeded
}

// MarkSeeded 标记场景初始建筑已写入
func (ps *PlacementStore) MarkSeeded() error {
	ps.data.Seeded = true
	return ps.Save()
}

// Clear 清空槽位（记录和初始化标记）并保存
func (ps *PlacementStore) Clear() error {
	ps.data = placementSaveData{}
	return ps.Save()
}

// ReplaceAll 用给定记录整体替换槽位内容（导入时使用）
// 实例ID重复时不做任何修改
func (ps *PlacementStore) ReplaceAll(records []PlacementRecord, seeded bool) error {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Guid] {
			return fmt.Errorf("%w: %s", ErrRecordExists, rec.Guid)
		}
		seen[rec.Guid] = true
	}

	ps.data = placementSaveData{
		Seeded:  seeded,
		Records: append([]PlacementRecord(nil), records...),
	}
	return ps.Save()
}

// indexOf 返回记录下标，不存在返回 -1
func (ps *PlacementStore) indexOf(guid string) int {
	for i := range ps.data.Records {
		if ps.data.Records[i].Guid == guid {
			return i
		}
	}
	return -1
}
