package systems

import (
	"log"

	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// movingState 移动一座已有建筑（单次）
// PlacementSystem 在第一次 OnAction 之后结束此状态，无论成功与否
type movingState struct {
	sys       *PlacementSystem
	target    *PlacedInstance
	occupancy *OccupancyMap
	direction types.Direction
	preview   ecs.EntityID

	hovered  types.Cell
	hasHover bool
}

func newMovingState(sys *PlacementSystem, target *PlacedInstance, occupancy *OccupancyMap) *movingState {
	s := &movingState{
		sys:       sys,
		target:    target,
		occupancy: occupancy,
		direction: target.Direction,
		preview:   entities.NewPlacementPreviewEntity(sys.entityManager, target.Definition),
	}
	s.sys.updatePreview(s.preview, target.Definition, s.direction, target.Origin, false, false)
	return s
}

func (s *movingState) Kind() StateKind { return StateMoving }

func (s *movingState) Subscriptions() []types.InputEvent {
	return []types.InputEvent{types.InputClick, types.InputRotate, types.InputCancel}
}

func (s *movingState) previewEntity() ecs.EntityID { return s.preview }

func (s *movingState) footprint() types.Size {
	return utils.Footprint(s.target.Definition.Size, s.direction)
}

// validate 与放置相同，但忽略目标建筑自身占用的格子
func (s *movingState) validate(cell types.Cell) bool {
	fp := s.footprint()
	return s.sys.grid.IsWithinBounds(cell, fp) &&
		s.occupancy.IsPlaceableIgnoring(cell, fp, s.target.Guid) &&
		s.sys.isZoneEligibleExcluding(cell, fp, s.target.Origin, s.target.Footprint())
}

func (s *movingState) OnAction(cell types.Cell) ActionResult {
	if !s.validate(cell) {
		log.Printf("[PlacementSystem] 无法把 %s 移动到 %v（朝向 %v）", s.target.Guid, cell, s.direction)
		return ActionResult{Done: true}
	}

	oldOrigin, oldFootprint := s.target.Origin, s.target.Footprint()
	fp := s.footprint()

	if err := s.occupancy.Relocate(s.target.Guid, cell, fp); err != nil {
		log.Printf("[PlacementSystem] 移动 %s 失败: %v", s.target.Guid, err)
		return ActionResult{Done: true}
	}
	pos := s.sys.grid.InstanceWorldPosition(cell, s.target.Definition.Size, s.direction)
	if err := s.sys.registry.Relocate(s.target.Guid, pos, cell, s.direction); err != nil {
		// 注册表与占用表不同步，恢复占用表
		log.Printf("[PlacementSystem] 移动 %s 失败: %v", s.target.Guid, err)
		_ = s.occupancy.Relocate(s.target.Guid, oldOrigin, oldFootprint)
		return ActionResult{Done: true}
	}

	if s.sys.zoneLocker != nil {
		s.sys.zoneLocker.ReleaseZone(s.sys.footprintCenter(oldOrigin, oldFootprint))
		s.sys.zoneLocker.LockZone(s.sys.footprintCenter(cell, fp))
	}

	log.Printf("[PlacementSystem] %s 已移动: %v -> %v，朝向 %v", s.target.Guid, oldOrigin, cell, s.direction)
	s.sys.notifyMoved(s.target, oldOrigin)
	return ActionResult{Committed: true, Done: true}
}

func (s *movingState) UpdateState(cell types.Cell) {
	s.hovered, s.hasHover = cell, true
	s.refreshPreview()
}

func (s *movingState) OnRotation() {
	s.direction = s.direction.Next()
	s.refreshPreview()
}

func (s *movingState) EndState() {
	s.sys.entityManager.DestroyEntity(s.preview)
}

func (s *movingState) refreshPreview() {
	valid := s.hasHover && s.validate(s.hovered)
	s.sys.updatePreview(s.preview, s.target.Definition, s.direction, s.hovered, s.hasHover, valid)
}
