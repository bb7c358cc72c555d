package systems

import (
	"fmt"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/types"
)

// loadingSavedState 启动时重放一条存档记录
// 存档是可信来源：不扣费，不检查区域，沿用记录中的实例ID、格子和朝向
type loadingSavedState struct {
	sys    *PlacementSystem
	def    *config.StructureDefinition
	record game.PlacementRecord

	inst *PlacedInstance
	err  error
}

func newLoadingSavedState(sys *PlacementSystem, def *config.StructureDefinition, rec game.PlacementRecord) *loadingSavedState {
	return &loadingSavedState{sys: sys, def: def, record: rec}
}

func (s *loadingSavedState) Kind() StateKind { return StateLoadingSaved }

// Subscriptions 不响应任何输入
func (s *loadingSavedState) Subscriptions() []types.InputEvent { return nil }

// OnAction 登记记录对应的建筑，cell 为记录中的格子
func (s *loadingSavedState) OnAction(cell types.Cell) ActionResult {
	if s.sys.registry.Has(s.record.Guid) {
		s.err = fmt.Errorf("%w: %s", ErrDuplicateGuid, s.record.Guid)
		return ActionResult{Done: true}
	}

	rec := s.record
	rec.Cell = cell
	inst, err := s.sys.register(s.def, cell, rec.Direction, func(pos types.WorldPos) (string, error) {
		return s.sys.registry.PlaceFromSaved(s.def, pos, rec)
	})
	if err != nil {
		s.err = err
		return ActionResult{Done: true}
	}

	s.inst = inst
	return ActionResult{Committed: true, Done: true}
}

func (s *loadingSavedState) UpdateState(types.Cell) {}

func (s *loadingSavedState) OnRotation() {}

func (s *loadingSavedState) EndState() {}
