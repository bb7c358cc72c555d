package types

// InputEvent 放置交互使用的输入信号
type InputEvent int

const (
	// InputClick 主按键点击（鼠标左键或触摸）
	InputClick InputEvent = iota
	// InputRotate 次要输入（鼠标右键），用于旋转
	InputRotate
	// InputCancel 取消（Esc）
	InputCancel
)

// AllInputEvents 按派发顺序列出全部输入信号
// 取消优先，避免同一帧内先执行点击再被取消
var AllInputEvents = []InputEvent{InputCancel, InputRotate, InputClick}

// String 返回输入信号名称
func (e InputEvent) String() string {
	switch e {
	case InputClick:
		return "click"
	case InputRotate:
		return "rotate"
	case InputCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
