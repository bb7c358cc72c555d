package game

import (
	"log"
	"sort"

	"github.com/gonewx/citybuilder/pkg/config"
)

// CityState 城市经济状态
// 记录资金以及各建筑对资源（电力、食物、CO2、人口……）的累计效果
//
// 效果按实例ID记账：同一实例重复 ApplyEffect 或 RemoveEffect 都不会重复计算
type CityState struct {
	Money int // 当前资金

	resources map[string]int            // 资源名 -> 当前累计值
	applied   map[string]map[string]int // 实例ID -> 已计入的效果
}

// NewCityState 创建城市经济状态
func NewCityState(initialMoney int) *CityState {
	return &CityState{
		Money:     initialMoney,
		resources: make(map[string]int),
		applied:   make(map[string]map[string]int),
	}
}

// AddMoney 增加资金
func (cs *CityState) AddMoney(amount int) {
	cs.Money += amount
}

// SpendMoney 扣除资金，如果资金不足返回 false
// 只有当资金充足时才会扣除，否则返回false表示操作失败
func (cs *CityState) SpendMoney(amount int) bool {
	if amount < 0 || cs.Money < amount {
		return false
	}
	cs.Money -= amount
	return true
}

// GetMoney 返回当前资金
func (cs *CityState) GetMoney() int {
	return cs.Money
}

// ApplyEffect 计入实例的资源效果
// 同一实例只计入一次
func (cs *CityState) ApplyEffect(guid string, def *config.StructureDefinition) {
	if def == nil {
		return
	}
	if _, done := cs.applied[guid]; done {
		return
	}

	effects := make(map[string]int, len(def.Effects))
	for name, delta := range def.Effects {
		effects[name] = delta
		cs.resources[name] += delta
	}
	cs.applied[guid] = effects

	if len(effects) > 0 {
		log.Printf("[CityState] Applied effects of %s (%s): %v", def.ID, guid, effects)
	}
}

// RemoveEffect 撤销实例的资源效果
// 未计入过的实例直接忽略
func (cs *CityState) RemoveEffect(guid string, def *config.StructureDefinition) {
	effects, done := cs.applied[guid]
	if !done {
		return
	}
	for name, delta := range effects {
		cs.resources[name] -= delta
	}
	delete(cs.applied, guid)

	if len(effects) > 0 && def != nil {
		log.Printf("[CityState] Removed effects of %s (%s)", def.ID, guid)
	}
}

// Resource 返回资源当前累计值
func (cs *CityState) Resource(name string) int {
	return cs.resources[name]
}

// ResourceNames 返回出现过的资源名称（排序）
func (cs *CityState) ResourceNames() []string {
	names := make([]string, 0, len(cs.resources))
	for name := range cs.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppliedCount 返回当前计入效果的实例数
func (cs *CityState) AppliedCount() int {
	return len(cs.applied)
}
