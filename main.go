// Package main 城市建造演示的桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            输出详细日志
//	--catalog <path>     建筑目录（默认使用嵌入的 data/catalog.yaml）
//	--scenario <path>    场景（默认 data/scenarios/tutorial.yaml）
//	--slot <name>        存档槽位
//	--reset              启动前清空存档槽位
//	--memory             不写入存档
//
// Controls:
//
//	1-9          放置建筑
//	R / 右键      旋转
//	X            拆除当前类别，Tab 切换类别，Shift+X 拆除所有类别
//	M            移动指针下的建筑
//	Esc          取消
//	F11          全屏
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/citybuilder/pkg/app"
	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
	catalogFlag  = flag.String("catalog", app.DefaultCatalogPath, "Structure catalog file")
	scenarioFlag = flag.String("scenario", app.DefaultScenarioPath, "Scenario file")
	slotFlag     = flag.String("slot", "", "Save slot name")
	resetFlag    = flag.Bool("reset", false, "Clear the save slot before loading")
	memoryFlag   = flag.Bool("memory", false, "Keep placements in memory only")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		CatalogPath:  *catalogFlag,
		ScenarioPath: *scenarioFlag,
		Slot:         *slotFlag,
		Reset:        *resetFlag,
		Memory:       *memoryFlag,
	})
	if err != nil {
		// 非 verbose 模式下 NewApp 已关闭日志输出
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("City Builder")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
