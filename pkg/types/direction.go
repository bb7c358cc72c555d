// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// Direction 定义建筑的朝向
// 按固定的旋转顺序循环：Down -> Left -> Up -> Right -> Down
// 数值即顺时针四分之一圈的次数（0-3）
type Direction int

const (
	// DirectionDown 默认朝向（0°）
	DirectionDown Direction = iota
	// DirectionLeft 旋转 90°
	DirectionLeft
	// DirectionUp 旋转 180°
	DirectionUp
	// DirectionRight 旋转 270°
	DirectionRight
)

// directionCount 朝向总数
const directionCount = 4

// Next 返回顺时针旋转 90° 后的朝向
func (d Direction) Next() Direction {
	return Direction((int(d.Normalize()) + 1) % directionCount)
}

// Normalize 将任意整数朝向归一化到 [0,3]
func (d Direction) Normalize() Direction {
	n := int(d) % directionCount
	if n < 0 {
		n += directionCount
	}
	return Direction(n)
}

// QuarterTurns 返回相对默认朝向的四分之一圈数
func (d Direction) QuarterTurns() int {
	return int(d.Normalize())
}

// Degrees 返回朝向对应的旋转角度（0/90/180/270）
func (d Direction) Degrees() float64 {
	return float64(d.QuarterTurns()) * 90
}

// SwapsAxes 旋转 90°/270° 时占地的宽高互换
func (d Direction) SwapsAxes() bool {
	return d.QuarterTurns()%2 == 1
}

// String 返回朝向的字符串表示
func (d Direction) String() string {
	switch d.Normalize() {
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	default:
		return "right"
	}
}

// ParseDirection 从字符串解析朝向（不区分大小写）
// 空字符串视为默认朝向 Down
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down":
		return DirectionDown, nil
	case "left":
		return DirectionLeft, nil
	case "up":
		return DirectionUp, nil
	case "right":
		return DirectionRight, nil
	default:
		return DirectionDown, fmt.Errorf("unknown direction %q", s)
	}
}

// MarshalText 实现 encoding.TextMarshaler，存档和配置中以字符串保存朝向
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
