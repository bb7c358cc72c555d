// Package app 提供城市建造演示的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/systems"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	// DefaultCatalogPath 默认建筑目录
	DefaultCatalogPath = "data/catalog.yaml"
	// DefaultScenarioPath 默认场景
	DefaultScenarioPath = "data/scenarios/tutorial.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// CatalogPath 建筑目录路径，为空使用 DefaultCatalogPath
	CatalogPath string
	// ScenarioPath 场景路径，为空使用 DefaultScenarioPath
	ScenarioPath string
	// Slot 存档槽位，为空使用 game.DefaultSlot
	Slot string
	// Reset 启动前清空存档槽位
	Reset bool
	// Memory 不使用 gdata，存档只保存在内存中
	Memory bool
}

// App 是城市建造演示的核心包装器，实现 ebiten.Game 接口
type App struct {
	catalog       *config.Catalog
	scenario      *config.ScenarioConfig
	grid          *utils.CoordinateGrid
	entityManager *ecs.EntityManager
	city          *game.CityState
	zones         *game.ZoneMap
	store         *game.PlacementStore
	settings      *game.SettingsManager
	system        *systems.PlacementSystem
	input         *pointerInput
	report        *systems.InitReport

	tools          []tool
	removeCategory int  // X 键拆除的类别下标
	picking        bool // 等待点击选择要移动的建筑
	status         string

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，如需读取嵌入的 data/ 文件，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = DefaultCatalogPath
	}
	if cfg.ScenarioPath == "" {
		cfg.ScenarioPath = DefaultScenarioPath
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("建筑目录加载失败: %w", err)
	}
	scenario, err := config.LoadScenarioConfig(cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("场景加载失败: %w", err)
	}
	log.Printf("[App] 场景 %s: %d 个建筑定义，网格 %dx%d", scenario.ID, catalog.Len(), scenario.Grid.Width, scenario.Grid.Depth)

	store, manager, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	grid, err := utils.NewCoordinateGrid(scenario.Grid.CellSize,
		types.WorldPos{X: scenario.Grid.OriginX, Z: scenario.Grid.OriginZ},
		scenario.Grid.Width, scenario.Grid.Depth)
	if err != nil {
		return nil, fmt.Errorf("网格参数非法: %w", err)
	}

	a := &App{
		catalog:       catalog,
		scenario:      scenario,
		grid:          grid,
		entityManager: ecs.NewEntityManager(),
		city:          game.NewCityState(scenario.InitialMoney),
		zones:         game.NewZoneMap(scenario.Zones),
		store:         store,
		settings:      game.NewSettingsManager(manager),
		verbose:       cfg.Verbose,
	}
	if a.settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	// 旧场景中的对象先以场景对象的形式存在，由放置引擎接管
	for _, obj := range scenario.SceneObjects {
		entities.NewSceneObjectEntity(a.entityManager, obj.Name, obj.Position, obj.Direction)
	}

	a.input = newPointerInput(grid)
	a.system, err = systems.NewPlacementSystem(&systems.PlacementContext{
		Grid:          grid,
		Catalog:       catalog,
		Economy:       a.city,
		Zones:         a.zones,
		Store:         store,
		EntityManager: a.entityManager,
		Input:         a.input,
		Listeners:     []systems.PlacementListener{a},
	}, scenario.Categories)
	if err != nil {
		return nil, fmt.Errorf("放置引擎初始化失败: %w", err)
	}

	a.report = a.system.Initialize(scenario.InitialPlacements)
	// 清理存档已接管或已拆除的场景对象
	a.entityManager.RemoveMarkedEntities()
	a.tools = buildTools(catalog, a.system.Categories(), !utils.IsMobile())
	a.status = fmt.Sprintf("Loaded %d, seeded %d, adopted %d", a.report.Loaded, a.report.Seeded, a.report.Reconciled)
	if n := len(a.report.Unresolved); n > 0 {
		a.status += fmt.Sprintf(", %d unknown objects", n)
	}

	return a, nil
}

// openStore 打开存档槽位，同时返回 gdata 管理器供设置使用
// gdata 不可用时退化为内存模式，管理器为 nil
func openStore(cfg Config) (*game.PlacementStore, *gdata.Manager, error) {
	var manager *gdata.Manager
	if !cfg.Memory {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] 警告：存储目录不可用: %v", err)
		}
		m, err := gdata.Open(gdata.Config{AppName: config.AppName})
		if err != nil {
			log.Printf("[App] 警告：gdata 初始化失败，存档只保存在内存中: %v", err)
		} else {
			manager = m
		}
	}

	store, err := game.NewPlacementStore(manager, cfg.Slot)
	if err != nil {
		return nil, nil, fmt.Errorf("存档加载失败: %w", err)
	}
	if cfg.Reset {
		if err := store.Clear(); err != nil {
			return nil, nil, fmt.Errorf("清空存档失败: %w", err)
		}
		log.Printf("[App] 已清空存档槽位 %s", store.Slot())
	}
	return store, manager, nil
}

// newPointerInput 按网格尺寸选择缩放，使整个网格落在视口内
func newPointerInput(grid *utils.CoordinateGrid) *pointerInput {
	worldW := float64(grid.Width) * grid.CellSize
	worldD := float64(grid.Depth) * grid.CellSize
	ppu := math.Min(config.PixelsPerUnit, math.Min(config.ViewportWidth/worldW, config.GameWindowHeight/worldD))

	in := utils.NewEbitenInput(ppu)
	in.CameraX = grid.Origin.X * ppu
	in.CameraY = grid.Origin.Z * ppu
	return &pointerInput{EbitenInput: in}
}

// OnStructurePlaced 放置成功后更新状态栏
func (a *App) OnStructurePlaced(inst *systems.PlacedInstance) {
	a.status = fmt.Sprintf("Built %s at %v", inst.Definition.Name, inst.Origin)
}

// OnStructureMoved 移动后更新状态栏
func (a *App) OnStructureMoved(inst *systems.PlacedInstance, from types.Cell) {
	a.status = fmt.Sprintf("Moved %s from %v to %v", inst.Definition.Name, from, inst.Origin)
}

// OnStructureRemoved 拆除后更新状态栏
func (a *App) OnStructureRemoved(inst *systems.PlacedInstance) {
	a.status = fmt.Sprintf("Removed %s", inst.Definition.Name)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		if err := a.settings.SetFullscreen(ebiten.IsFullscreen()); err != nil {
			log.Printf("[App] 保存设置失败: %v", err)
		}
	}

	a.input.clickConsumed = false
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		a.input.clickConsumed = a.handleClick(x, y)
	}
	a.handleKeys()

	deltaTime := 1.0 / 60.0
	a.system.Update(deltaTime)
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// handleClick 处理工具栏点击和移动选择，返回点击是否已被消费
func (a *App) handleClick(x, y int) bool {
	if idx := config.ToolbarButtonAt(x, y, len(a.tools)); idx >= 0 {
		a.activate(a.tools[idx])
		return true
	}
	if x >= config.ViewportWidth {
		return true
	}
	if a.picking {
		pos := utils.ScreenToWorld(x, y, a.input.CameraX, a.input.CameraY, a.input.PixelsPerUnit)
		a.pickForMove(a.grid.WorldToCell(pos))
		return true
	}
	return false
}

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// handleKeys 键盘快捷键
//
//	1-9      放置目录中的第 N 个建筑
//	X        拆除当前类别，Shift+X 拆除所有类别
//	Tab      切换拆除类别
//	M        移动指针下的建筑
//	G / Z    显示或隐藏网格线 / 区域
func (a *App) handleKeys() {
	defs := a.catalog.Definitions()
	for i := 0; i < len(defs) && i < len(digitKeys); i++ {
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			a.activate(tool{kind: toolPlace, definition: defs[i].ID})
		}
	}

	categories := a.system.Categories()
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(categories) > 0 {
		a.removeCategory = (a.removeCategory + 1) % len(categories)
		a.status = "Remove category: " + categories[a.removeCategory]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			a.activate(tool{kind: toolRemoveAll})
		} else if len(categories) > 0 {
			a.activate(tool{kind: toolRemove, category: a.currentRemoveCategory()})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if cell, ok := a.system.HoveredCell(); ok {
			a.pickForMove(cell)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		if _, err := a.settings.ToggleGrid(); err != nil {
			log.Printf("[App] 保存设置失败: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		if _, err := a.settings.ToggleZones(); err != nil {
			log.Printf("[App] 保存设置失败: %v", err)
		}
	}
}

// activate 执行工具
func (a *App) activate(t tool) {
	a.picking = false

	var err error
	switch t.kind {
	case toolPlace:
		err = a.system.StartPlacing(t.definition)
		if err == nil {
			def, _ := a.catalog.GetDefinition(t.definition)
			a.status = fmt.Sprintf("Placing %s ($%d)", def.Name, def.Cost)
		}
	case toolRemove:
		err = a.system.StartRemoving(t.category)
		if err == nil {
			for i, c := range a.system.Categories() {
				if c == t.category {
					a.removeCategory = i
				}
			}
			a.status = "Removing " + t.category
		}
	case toolRemoveAll:
		a.system.StartRemovingAll()
		a.status = "Removing everything"
	case toolMove:
		a.system.Stop()
		a.picking = true
		a.status = "Click a structure to move"
	case toolRotate:
		a.system.Dispatch(types.InputRotate)
	case toolCancel:
		a.system.Stop()
		a.status = ""
	}

	if err != nil {
		log.Printf("[App] %s 失败: %v", t.label, err)
		a.status = err.Error()
	}
}

// currentRemoveCategory 返回 X 键拆除的类别
func (a *App) currentRemoveCategory() string {
	categories := a.system.Categories()
	if len(categories) == 0 {
		return ""
	}
	return categories[a.removeCategory%len(categories)]
}

// pickForMove 开始移动格子上的建筑
func (a *App) pickForMove(cell types.Cell) {
	a.picking = false
	inst, ok := a.system.InstanceAt(cell)
	if !ok {
		a.status = fmt.Sprintf("Nothing to move at %v", cell)
		return
	}
	if err := a.system.StartMoving(inst.Guid); err != nil {
		a.status = err.Error()
		return
	}
	a.status = fmt.Sprintf("Moving %s", inst.Definition.Name)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// System 返回放置引擎
func (a *App) System() *systems.PlacementSystem {
	return a.system
}

// Report 返回启动加载结果
func (a *App) Report() *systems.InitReport {
	return a.report
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
