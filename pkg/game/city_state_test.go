package game

import (
	"testing"

	"github.com/gonewx/citybuilder/pkg/config"
)

// TestCityStateSpendMoney 测试资金扣除
func TestCityStateSpendMoney(t *testing.T) {
	tests := []struct {
		name      string
		initial   int
		amount    int
		wantOK    bool
		wantMoney int
	}{
		{"资金充足", 300, 100, true, 200},
		{"资金刚好", 100, 100, true, 0},
		{"资金不足", 50, 100, false, 50},
		{"免费建筑", 0, 0, true, 0},
		{"负数金额", 100, -10, false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewCityState(tt.initial)
			if got := cs.SpendMoney(tt.amount); got != tt.wantOK {
				t.Errorf("SpendMoney(%d) = %v, want %v", tt.amount, got, tt.wantOK)
			}
			if cs.GetMoney() != tt.wantMoney {
				t.Errorf("Money = %d, want %d", cs.GetMoney(), tt.wantMoney)
			}
		})
	}
}

// TestCityStateEffectsIdempotent 测试效果按实例只计入一次
func TestCityStateEffectsIdempotent(t *testing.T) {
	cs := NewCityState(0)
	plant := &config.StructureDefinition{ID: "coal_plant", Effects: map[string]int{"power": 20, "co2": 5}}
	house := &config.StructureDefinition{ID: "house", Effects: map[string]int{"power": -2, "population": 4}}

	cs.ApplyEffect("p1", plant)
	cs.ApplyEffect("p1", plant)
	cs.ApplyEffect("h1", house)
	cs.ApplyEffect("h2", house)

	if got := cs.Resource("power"); got != 16 {
		t.Errorf("power = %d, want 16", got)
	}
	if got := cs.Resource("population"); got != 8 {
		t.Errorf("population = %d, want 8", got)
	}
	if cs.AppliedCount() != 3 {
		t.Errorf("AppliedCount = %d, want 3", cs.AppliedCount())
	}

	cs.RemoveEffect("h1", house)
	cs.RemoveEffect("h1", house)
	cs.RemoveEffect("unknown", house)

	if got := cs.Resource("power"); got != 18 {
		t.Errorf("power after removal = %d, want 18", got)
	}
	if got := cs.Resource("population"); got != 4 {
		t.Errorf("population after removal = %d, want 4", got)
	}

	names := cs.ResourceNames()
	if len(names) != 3 || names[0] != "co2" || names[2] != "power" {
		t.Errorf("ResourceNames() = %v", names)
	}
}

// TestCityStateRemoveUsesAppliedEffects 测试撤销按计入时的效果，而非当前定义
func TestCityStateRemoveUsesAppliedEffects(t *testing.T) {
	cs := NewCityState(0)
	def := &config.StructureDefinition{ID: "farm", Effects: map[string]int{"food": 10}}

	cs.ApplyEffect("f1", def)
	def.Effects["food"] = 99
	cs.RemoveEffect("f1", def)

	if got := cs.Resource("food"); got != 0 {
		t.Errorf("food = %d, want 0", got)
	}
}
