package systems

import (
	"log"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// placingState 放置新建筑
// 预览跟随悬停格子，点击时验证、扣费、登记
type placingState struct {
	sys       *PlacementSystem
	def       *config.StructureDefinition
	occupancy *OccupancyMap
	direction types.Direction
	preview   ecs.EntityID

	hovered  types.Cell
	hasHover bool
}

func newPlacingState(sys *PlacementSystem, def *config.StructureDefinition, occupancy *OccupancyMap) *placingState {
	return &placingState{
		sys:       sys,
		def:       def,
		occupancy: occupancy,
		direction: types.DirectionDown,
		preview:   entities.NewPlacementPreviewEntity(sys.entityManager, def),
	}
}

func (s *placingState) Kind() StateKind { return StatePlacing }

func (s *placingState) Subscriptions() []types.InputEvent {
	return []types.InputEvent{types.InputClick, types.InputRotate, types.InputCancel}
}

func (s *placingState) previewEntity() ecs.EntityID { return s.preview }

func (s *placingState) footprint() types.Size {
	return utils.Footprint(s.def.Size, s.direction)
}

// validate 检查格子能否放置：网格范围、类别占用表、区域
func (s *placingState) validate(cell types.Cell) bool {
	fp := s.footprint()
	return s.sys.grid.IsWithinBounds(cell, fp) &&
		s.occupancy.IsPlaceable(cell, fp) &&
		s.sys.isZoneEligible(cell, fp)
}

func (s *placingState) OnAction(cell types.Cell) ActionResult {
	s.hovered, s.hasHover = cell, true

	if !s.validate(cell) {
		log.Printf("[PlacementSystem] 格子 %v 无法放置 %s（朝向 %v）", cell, s.def.ID, s.direction)
		s.refreshPreview()
		return ActionResult{}
	}

	// 先扣费，再修改占用表
	if s.sys.economy != nil && !s.sys.economy.SpendMoney(s.def.Cost) {
		log.Printf("[PlacementSystem] 资金不足，无法放置 %s（需要 %d）", s.def.ID, s.def.Cost)
		return ActionResult{}
	}

	inst, err := s.sys.register(s.def, cell, s.direction, func(pos types.WorldPos) (string, error) {
		return s.sys.registry.PlaceNew(s.def, pos, cell, s.direction)
	})
	if err != nil {
		log.Printf("[PlacementSystem] 放置 %s 失败: %v", s.def.ID, err)
		s.refreshPreview()
		return ActionResult{}
	}

	log.Printf("[PlacementSystem] 成功放置 %s (%s) 在 %v，朝向 %v", s.def.ID, inst.Guid, cell, s.direction)
	s.sys.notifyPlaced(inst)
	s.refreshPreview()

	return ActionResult{Committed: true, Done: s.def.Unique}
}

func (s *placingState) UpdateState(cell types.Cell) {
	s.hovered, s.hasHover = cell, true
	s.refreshPreview()
}

func (s *placingState) OnRotation() {
	s.direction = s.direction.Next()
	s.refreshPreview()
}

func (s *placingState) EndState() {
	s.sys.entityManager.DestroyEntity(s.preview)
}

// refreshPreview 按当前朝向和悬停格子重新验证并更新预览
func (s *placingState) refreshPreview() {
	valid := s.hasHover && s.validate(s.hovered)
	s.sys.updatePreview(s.preview, s.def, s.direction, s.hovered, s.hasHover, valid)
}
