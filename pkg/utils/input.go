// Package utils 提供通用工具函数
package utils

import (
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput 基于 ebiten 的输入源
// 同时支持鼠标和触摸，将指针屏幕坐标换算为俯视图中的世界坐标：
//
//	worldX = (screenX + CameraX) / PixelsPerUnit
//	worldZ = (screenY + CameraY) / PixelsPerUnit
//
// 按键映射：左键/触摸 = 点击，右键或 R = 旋转，Esc = 取消
type EbitenInput struct {
	PixelsPerUnit float64 // 每个世界单位对应的像素数
	CameraX       float64 // 摄像机水平偏移（像素）
	CameraY       float64 // 摄像机垂直偏移（像素）
}

// NewEbitenInput 创建 ebiten 输入源
func NewEbitenInput(pixelsPerUnit float64) *EbitenInput {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &EbitenInput{PixelsPerUnit: pixelsPerUnit}
}

// PointerWorldPosition 返回当前指针对应的世界坐标
// ebiten 总能给出指针位置（窗口外时为最后一次的位置），因此总是返回 true
func (in *EbitenInput) PointerWorldPosition() (types.WorldPos, bool) {
	x, y := GetPointerPosition()
	return ScreenToWorld(x, y, in.CameraX, in.CameraY, in.PixelsPerUnit), true
}

// JustTriggered 检查输入信号是否在本帧刚刚触发
func (in *EbitenInput) JustTriggered(ev types.InputEvent) bool {
	switch ev {
	case types.InputClick:
		clicked, _, _ := IsJustTouchedOrClicked()
		return clicked
	case types.InputRotate:
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
			inpututil.IsKeyJustPressed(ebiten.KeyR)
	case types.InputCancel:
		return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	default:
		return false
	}
}

// ScreenToWorld 将屏幕坐标转换为俯视图世界坐标（Y 固定为 0）
func ScreenToWorld(screenX, screenY int, cameraX, cameraY, pixelsPerUnit float64) types.WorldPos {
	return types.WorldPos{
		X: (float64(screenX) + cameraX) / pixelsPerUnit,
		Z: (float64(screenY) + cameraY) / pixelsPerUnit,
	}
}

// WorldToScreen 将俯视图世界坐标转换为屏幕坐标
func WorldToScreen(pos types.WorldPos, cameraX, cameraY, pixelsPerUnit float64) (float64, float64) {
	return pos.X*pixelsPerUnit - cameraX, pos.Z*pixelsPerUnit - cameraY
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸优先，否则鼠标）
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
