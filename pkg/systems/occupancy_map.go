package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// OccupancyEntry 一座建筑在占用表中的条目
// 占地范围内的每个格子都引用同一个条目
type OccupancyEntry struct {
	Identifier string     // 建筑定义ID
	Guid       string     // 实例ID
	Origin     types.Cell // 占地原点格子
	Size       types.Size // 占地尺寸（已考虑朝向）
}

// OccupancyMap 一个类别的格子占用表
// 负责跟踪哪些格子已被建筑占用，并验证放置候选位置
//
// 只跟踪 [Min, Min+Size) 范围内的格子，范围外的格子视为"已占用"，防止放置
type OccupancyMap struct {
	category string
	min      types.Cell
	size     types.Size

	cells  map[types.Cell]*OccupancyEntry
	byGuid map[string]*OccupancyEntry
}

// NewOccupancyMap 创建类别占用表
// 参数:
//   - category: 类别名称
//   - lo: 跟踪范围的最小格子
//   - size: 跟踪范围的尺寸
//
// 返回:
//   - *OccupancyMap: 空的占用表
func NewOccupancyMap(category string, lo types.Cell, size types.Size) *OccupancyMap {
	return &OccupancyMap{
		category: category,
		min:      lo,
		size:     size,
		cells:    make(map[types.Cell]*OccupancyEntry),
		byGuid:   make(map[string]*OccupancyEntry),
	}
}

// Category 返回类别名称
func (m *OccupancyMap) Category() string {
	return m.category
}

// Bounds 返回跟踪范围
func (m *OccupancyMap) Bounds() (types.Cell, types.Size) {
	return m.min, m.size
}

// contains 检查格子是否在跟踪范围内
func (m *OccupancyMap) contains(cell types.Cell) bool {
	return cell.X >= m.min.X && cell.X < m.min.X+m.size.W &&
		cell.Z >= m.min.Z && cell.Z < m.min.Z+m.size.H
}

// IsPlaceable 检查占地范围内的每个格子是否都在跟踪范围内且未被占用
func (m *OccupancyMap) IsPlaceable(origin types.Cell, size types.Size) bool {
	return m.check(origin, size, "") == nil
}

// IsPlaceableIgnoring 与 IsPlaceable 相同，但忽略指定实例自身占用的格子
// 用于移动建筑：建筑可以移动到与自身原位置重叠的地方
func (m *OccupancyMap) IsPlaceableIgnoring(origin types.Cell, size types.Size, guid string) bool {
	return m.check(origin, size, guid) == nil
}

// check 返回占地不可放置的原因，可放置时返回 nil
func (m *OccupancyMap) check(origin types.Cell, size types.Size, ignoreGuid string) error {
	if !size.IsValid() {
		return fmt.Errorf("%w: invalid size %v", ErrOutOfBounds, size)
	}
	for _, cell := range utils.FootprintCells(origin, size) {
		if !m.contains(cell) {
			return fmt.Errorf("%w: %v outside %s", ErrOutOfBounds, cell, m.category)
		}
		if entry, occupied := m.cells[cell]; occupied && (ignoreGuid == "" || entry.Guid != ignoreGuid) {
			return fmt.Errorf("%w: %v held by %s", ErrCellOccupied, cell, entry.Guid)
		}
	}
	return nil
}

// Add 在占地范围内的每个格子写入同一个条目
//
// 调用者应先用 IsPlaceable 确认；这里仍会检查一次，
// 格子越界或已被占用时返回错误且不做任何修改
func (m *OccupancyMap) Add(origin types.Cell, size types.Size, identifier, guid string) error {
	if err := m.check(origin, size, ""); err != nil {
		log.Printf("[OccupancyMap] %s: 拒绝写入 %s (%s): %v", m.category, identifier, guid, err)
		return err
	}
	if _, exists := m.byGuid[guid]; exists {
		return fmt.Errorf("%w: %s already in %s", ErrDuplicateGuid, guid, m.category)
	}

	entry := &OccupancyEntry{
		Identifier: identifier,
		Guid:       guid,
		Origin:     origin,
		Size:       size,
	}
	for _, cell := range utils.FootprintCells(origin, size) {
		m.cells[cell] = entry
	}
	m.byGuid[guid] = entry
	return nil
}

// GetGuid 返回占用该格子的实例ID
func (m *OccupancyMap) GetGuid(cell types.Cell) (string, bool) {
	entry, ok := m.cells[cell]
	if !ok {
		return "", false
	}
	return entry.Guid, true
}

// Entry 返回占用该格子的条目副本
func (m *OccupancyMap) Entry(cell types.Cell) (OccupancyEntry, bool) {
	entry, ok := m.cells[cell]
	if !ok {
		return OccupancyEntry{}, false
	}
	return *entry, true
}

// EntryByGuid 按实例ID返回条目副本
func (m *OccupancyMap) EntryByGuid(guid string) (OccupancyEntry, bool) {
	entry, ok := m.byGuid[guid]
	if !ok {
		return OccupancyEntry{}, false
	}
	return *entry, true
}

// RemoveObjectPositions 清除占用该格子的条目的全部格子
// 格子为空时什么也不做
//
// 返回:
//   - OccupancyEntry: 被清除的条目
//   - bool: 是否清除了条目
func (m *OccupancyMap) RemoveObjectPositions(cell types.Cell) (OccupancyEntry, bool) {
	entry, ok := m.cells[cell]
	if !ok {
		return OccupancyEntry{}, false
	}
	m.removeEntry(entry)
	return *entry, true
}

// removeEntry 清除条目的全部格子
func (m *OccupancyMap) removeEntry(entry *OccupancyEntry) {
	for _, c := range utils.FootprintCells(entry.Origin, entry.Size) {
		if m.cells[c] == entry {
			delete(m.cells, c)
		}
	}
	delete(m.byGuid, entry.Guid)
}

// Relocate 把实例的条目移动到新的原点和尺寸
// 验证时忽略实例自身占用的格子；失败时不做任何修改
func (m *OccupancyMap) Relocate(guid string, origin types.Cell, size types.Size) error {
	entry, ok := m.byGuid[guid]
	if !ok {
		return fmt.Errorf("%w: %s not in %s", ErrUnknownGuid, guid, m.category)
	}
	if err := m.check(origin, size, guid); err != nil {
		return err
	}

	m.removeEntry(entry)
	moved := &OccupancyEntry{
		Identifier: entry.Identifier,
		Guid:       guid,
		Origin:     origin,
		Size:       size,
	}
	for _, cell := range utils.FootprintCells(origin, size) {
		m.cells[cell] = moved
	}
	m.byGuid[guid] = moved
	return nil
}

// OccupiedCells 返回格子到实例ID的快照
func (m *OccupancyMap) OccupiedCells() map[types.Cell]string {
	snapshot := make(map[types.Cell]string, len(m.cells))
	for cell, entry := range m.cells {
		snapshot[cell] = entry.Guid
	}
	return snapshot
}

// Len 返回条目数量（建筑数量，不是格子数量）
func (m *OccupancyMap) Len() int {
	return len(m.byGuid)
}
