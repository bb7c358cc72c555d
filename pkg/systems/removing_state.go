package systems

import (
	"github.com/gonewx/citybuilder/pkg/types"
)

// removingState 拆除某个类别（或所有类别）的建筑
// occupancy 为空表示 RemovingAll
type removingState struct {
	sys       *PlacementSystem
	kind      StateKind
	category  string
	occupancy []*OccupancyMap
}

func newRemovingState(sys *PlacementSystem, category string, occupancy *OccupancyMap) *removingState {
	return &removingState{
		sys:       sys,
		kind:      StateRemoving,
		category:  category,
		occupancy: []*OccupancyMap{occupancy},
	}
}

// newRemovingAllState 按类别名称排序依次检查每张占用表
func newRemovingAllState(sys *PlacementSystem) *removingState {
	maps := make([]*OccupancyMap, 0, len(sys.categories))
	for _, name := range sys.categories {
		maps = append(maps, sys.occupancy[name])
	}
	return &removingState{
		sys:       sys,
		kind:      StateRemovingAll,
		occupancy: maps,
	}
}

func (s *removingState) Kind() StateKind { return s.kind }

func (s *removingState) Subscriptions() []types.InputEvent {
	return []types.InputEvent{types.InputClick, types.InputCancel}
}

// OnAction 拆除格子上的建筑；RemovingAll 不假设格子只属于一个类别
func (s *removingState) OnAction(cell types.Cell) ActionResult {
	removed := false
	for _, occ := range s.occupancy {
		if s.sys.removeAt(occ, cell) {
			removed = true
		}
	}
	s.UpdateState(cell)
	return ActionResult{Committed: removed}
}

func (s *removingState) UpdateState(cell types.Cell) {
	s.sys.updateRemovalIndicator(true, s.category, cell, s.highlighted(cell))
}

// highlighted 返回悬停格子上的建筑实例
func (s *removingState) highlighted(cell types.Cell) *PlacedInstance {
	for _, occ := range s.occupancy {
		if guid, ok := occ.GetGuid(cell); ok {
			if inst, ok := s.sys.registry.Get(guid); ok {
				return inst
			}
		}
	}
	return nil
}

func (s *removingState) OnRotation() {}

// EndState 只隐藏拆除指示器
func (s *removingState) EndState() {
	s.sys.updateRemovalIndicator(false, "", types.Cell{}, nil)
}
