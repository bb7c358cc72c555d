package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gonewx/citybuilder/pkg/components"
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/systems"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 58, G: 94, B: 52, A: 255}
	gridLineColor   = color.RGBA{R: 80, G: 120, B: 72, A: 255}
	zoneColor       = color.RGBA{R: 120, G: 160, B: 90, A: 60}
	panelColor      = color.RGBA{R: 30, G: 30, B: 36, A: 255}
	buttonColor     = color.RGBA{R: 60, G: 60, B: 72, A: 255}
	activeColor     = color.RGBA{R: 90, G: 110, B: 160, A: 255}
	validColor      = color.RGBA{R: 80, G: 220, B: 80, A: 255}
	invalidColor    = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	unknownColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}

	// 按类别下标循环使用
	categoryColors = []color.RGBA{
		{R: 200, G: 170, B: 120, A: 255},
		{R: 40, G: 140, B: 60, A: 255},
		{R: 110, G: 140, B: 200, A: 255},
		{R: 190, G: 110, B: 170, A: 255},
	}
)

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	settings := a.settings.GetSettings()
	if settings.ShowZones {
		a.drawZones(screen)
	}
	if settings.ShowGrid {
		a.drawGrid(screen)
	}
	a.drawSceneObjects(screen)
	a.drawStructures(screen)
	a.drawPreview(screen)
	a.drawRemovalIndicator(screen)
	a.drawPanel(screen)
}

// cellRect 返回占地矩形的屏幕坐标
func (a *App) cellRect(origin types.Cell, size types.Size) (x, y, w, h float32) {
	sx, sy := utils.WorldToScreen(a.grid.CellToWorld(origin), a.input.CameraX, a.input.CameraY, a.input.PixelsPerUnit)
	px := a.grid.CellSize * a.input.PixelsPerUnit
	return float32(sx), float32(sy), float32(float64(size.W) * px), float32(float64(size.H) * px)
}

func (a *App) drawZones(screen *ebiten.Image) {
	ppu := a.input.PixelsPerUnit
	for _, z := range a.scenario.Zones {
		x, y := utils.WorldToScreen(types.WorldPos{X: z.X, Z: z.Z}, a.input.CameraX, a.input.CameraY, ppu)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(z.Width*ppu), float32(z.Depth*ppu), zoneColor, false)
	}
}

func (a *App) drawGrid(screen *ebiten.Image) {
	for x := 0; x < a.grid.Width; x++ {
		for z := 0; z < a.grid.Depth; z++ {
			rx, ry, rw, rh := a.cellRect(types.Cell{X: x, Z: z}, types.Size{W: 1, H: 1})
			vector.StrokeRect(screen, rx, ry, rw, rh, 1, gridLineColor, false)
		}
	}
}

// drawSceneObjects 绘制未被接管的旧场景对象
func (a *App) drawSceneObjects(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.PositionComponent](a.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](a.entityManager, id)
		x, y := utils.WorldToScreen(types.WorldPos{X: pos.X, Z: pos.Z}, a.input.CameraX, a.input.CameraY, a.input.PixelsPerUnit)
		vector.StrokeRect(screen, float32(x)-4, float32(y)-4, 8, 8, 1, unknownColor, false)
		ebitenutil.DebugPrintAt(screen, "?", int(x)+6, int(y)-8)
	}
}

func (a *App) drawStructures(screen *ebiten.Image) {
	categories := a.system.Categories()
	for _, id := range ecs.GetEntitiesWith1[*components.PlacedStructureComponent](a.entityManager) {
		placed, _ := ecs.GetComponent[*components.PlacedStructureComponent](a.entityManager, id)

		fill := categoryColors[0]
		for i, c := range categories {
			if c == placed.Category {
				fill = categoryColors[i%len(categoryColors)]
			}
		}

		x, y, w, h := a.cellRect(placed.Origin, placed.Footprint)
		vector.DrawFilledRect(screen, x+1, y+1, w-2, h-2, fill, false)
		vector.StrokeRect(screen, x+1, y+1, w-2, h-2, 1, color.Black, false)

		label := placed.DefinitionID
		if def, ok := a.catalog.GetDefinition(placed.DefinitionID); ok {
			label = def.Name
		}
		if maxChars := int(w / 6); len(label) > maxChars && maxChars > 0 {
			label = label[:maxChars]
		}
		ebitenutil.DebugPrintAt(screen, label, int(x)+2, int(y)+1)
	}
}

func (a *App) drawPreview(screen *ebiten.Image) {
	preview, ok := a.system.Preview()
	if !ok || !preview.HasCell {
		return
	}
	c := invalidColor
	if preview.Valid {
		c = validColor
	}
	c.A = uint8(preview.Alpha * 255)

	x, y, w, h := a.cellRect(preview.Cell, preview.Footprint)
	vector.DrawFilledRect(screen, x, y, w, h, c, false)
	vector.StrokeRect(screen, x, y, w, h, 2, c, false)
}

func (a *App) drawRemovalIndicator(screen *ebiten.Image) {
	indicator, ok := a.system.RemovalIndicator()
	if !ok || !indicator.Visible {
		return
	}
	if placed, ok := ecs.GetComponent[*components.PlacedStructureComponent](a.entityManager, indicator.HighlightedEntity); ok {
		x, y, w, h := a.cellRect(placed.Origin, placed.Footprint)
		vector.StrokeRect(screen, x, y, w, h, 3, invalidColor, false)
		return
	}
	x, y, w, h := a.cellRect(indicator.Cell, types.Size{W: 1, H: 1})
	vector.StrokeRect(screen, x, y, w, h, 1, invalidColor, false)
}

// drawPanel 右侧状态栏和工具栏
func (a *App) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, config.ViewportWidth, 0, config.GameWindowWidth-config.ViewportWidth, config.GameWindowHeight, panelColor, false)

	var b strings.Builder
	fmt.Fprintf(&b, "Money: $%d\n", a.city.GetMoney())
	for _, name := range a.city.ResourceNames() {
		fmt.Fprintf(&b, "%s: %d\n", name, a.city.Resource(name))
	}
	fmt.Fprintf(&b, "Mode: %v\n", a.system.ActiveStateKind())
	if cell, ok := a.system.HoveredCell(); ok {
		fmt.Fprintf(&b, "Cell: %d,%d\n", cell.X, cell.Z)
	}
	fmt.Fprintf(&b, "Structures: %d\n", len(a.system.Instances()))
	ebitenutil.DebugPrintAt(screen, b.String(), int(config.ToolbarX), 6)

	active := a.activeTool()
	for i, t := range a.tools {
		x, y, w, h := config.ToolbarButtonRect(i)
		c := buttonColor
		if i == active {
			c = activeColor
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
		ebitenutil.DebugPrintAt(screen, t.label, int(x)+4, int(y)+3)
	}

	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, 6, config.GameWindowHeight-18)
	}
}

// activeTool 返回与当前状态对应的按钮下标，没有时返回 -1
func (a *App) activeTool() int {
	if a.picking {
		return a.toolIndex(func(t tool) bool { return t.kind == toolMove })
	}
	if preview, ok := a.system.Preview(); ok {
		return a.toolIndex(func(t tool) bool { return t.kind == toolPlace && t.definition == preview.DefinitionID })
	}
	switch a.system.ActiveStateKind() {
	case systems.StateRemovingAll:
		return a.toolIndex(func(t tool) bool { return t.kind == toolRemoveAll })
	case systems.StateRemoving:
		category := a.currentRemoveCategory()
		return a.toolIndex(func(t tool) bool { return t.kind == toolRemove && t.category == category })
	}
	return -1
}

func (a *App) toolIndex(match func(tool) bool) int {
	for i, t := range a.tools {
		if match(t) {
			return i
		}
	}
	return -1
}
