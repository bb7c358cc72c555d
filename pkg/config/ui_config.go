package config

// UI 布局相关的常量配置
// 俯视图网格在左侧，工具栏和状态面板在右侧

const (
	// AppName 存档目录名称（gdata 应用名）
	AppName = "citybuilder"

	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 900

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 660

	// PixelsPerUnit 俯视图中每个世界单位对应的像素数
	PixelsPerUnit = 32.0

	// ViewportWidth 网格视口宽度（像素），右侧为工具栏
	ViewportWidth = 660

	// ToolbarX 工具栏左边缘
	ToolbarX = ViewportWidth + 10.0

	// ToolbarY 工具栏上边缘（上方留给状态文字）
	ToolbarY = 150.0

	// ToolbarButtonWidth 工具栏按钮宽度
	ToolbarButtonWidth = 210.0

	// ToolbarButtonHeight 工具栏按钮高度
	ToolbarButtonHeight = 22.0

	// ToolbarButtonGap 按钮间距
	ToolbarButtonGap = 4.0
)

// ToolbarButtonRect 计算第 N 个工具栏按钮的矩形
//
// 参数：
//   - index: 按钮索引（从上到下）
//
// 返回：
//   - x, y: 左上角
//   - w, h: 宽高
func ToolbarButtonRect(index int) (x, y, w, h float64) {
	if index < 0 {
		index = 0
	}
	y = ToolbarY + float64(index)*(ToolbarButtonHeight+ToolbarButtonGap)
	return ToolbarX, y, ToolbarButtonWidth, ToolbarButtonHeight
}

// ToolbarButtonAt 返回屏幕坐标所在的工具栏按钮索引
// 不在任何按钮上时返回 -1
func ToolbarButtonAt(screenX, screenY, count int) int {
	for i := 0; i < count; i++ {
		x, y, w, h := ToolbarButtonRect(i)
		fx, fy := float64(screenX), float64(screenY)
		if fx >= x && fx < x+w && fy >= y && fy < y+h {
			return i
		}
	}
	return -1
}
