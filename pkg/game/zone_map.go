package game

import (
	"log"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/types"
)

// Zone 世界坐标中的矩形可建造区域
type Zone struct {
	ID       string
	MinX     float64
	MinZ     float64
	Width    float64
	Depth    float64
	Capacity int // 0 表示不限
	locked   int // 区域内锁定的建筑数
}

// IsFull 区域是否已达到容量上限
func (z *Zone) IsFull() bool {
	return z.Capacity > 0 && z.locked >= z.Capacity
}

// Contains 检查世界坐标是否落在区域内（左闭右开）
func (z *Zone) Contains(pos types.WorldPos) bool {
	return pos.X >= z.MinX && pos.X < z.MinX+z.Width &&
		pos.Z >= z.MinZ && pos.Z < z.MinZ+z.Depth
}

// ZoneMap 可建造区域表
// 没有配置任何区域时所有位置都可建造
type ZoneMap struct {
	zones []*Zone
}

// NewZoneMap 由场景的区域配置创建区域表
func NewZoneMap(cfgs []config.ZoneConfig) *ZoneMap {
	zm := &ZoneMap{zones: make([]*Zone, 0, len(cfgs))}
	for _, c := range cfgs {
		zm.zones = append(zm.zones, &Zone{
			ID:       c.ID,
			MinX:     c.X,
			MinZ:     c.Z,
			Width:    c.Width,
			Depth:    c.Depth,
			Capacity: c.Capacity,
		})
	}
	return zm
}

// IsEligible 检查世界坐标是否可建造
// 坐标必须落在某个区域内，且该区域未满
func (zm *ZoneMap) IsEligible(pos types.WorldPos) bool {
	if len(zm.zones) == 0 {
		return true
	}
	z := zm.find(pos)
	return z != nil && !z.IsFull()
}

// LockZone 建筑落成后锁定所在区域，占用一个容量
func (zm *ZoneMap) LockZone(pos types.WorldPos) {
	if z := zm.find(pos); z != nil {
		z.locked++
	}
}

// ReleaseZone 建筑拆除后释放所在区域
func (zm *ZoneMap) ReleaseZone(pos types.WorldPos) {
	z := zm.find(pos)
	if z == nil {
		return
	}
	if z.locked == 0 {
		log.Printf("[ZoneMap] Warning: release on unlocked zone %s", z.ID)
		return
	}
	z.locked--
}

// LockCount 返回区域内锁定的建筑数，未知区域返回 0
func (zm *ZoneMap) LockCount(id string) int {
	for _, z := range zm.zones {
		if z.ID == id {
			return z.locked
		}
	}
	return 0
}

// find 返回包含该坐标的第一个区域
func (zm *ZoneMap) find(pos types.WorldPos) *Zone {
	for _, z := range zm.zones {
		if z.Contains(pos) {
			return z
		}
	}
	return nil
}
