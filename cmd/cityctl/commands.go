package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/ecs"
	"github.com/gonewx/citybuilder/pkg/entities"
	"github.com/gonewx/citybuilder/pkg/game"
	"github.com/gonewx/citybuilder/pkg/systems"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"github.com/urfave/cli/v3"
)

const (
	defaultCatalogPath  = "data/catalog.yaml"
	defaultScenarioPath = "data/scenarios/tutorial.yaml"
)

// storeOpener 打开存档槽位
type storeOpener func(slot string) (*game.PlacementStore, error)

// openGdataStore 打开 gdata 中的存档槽位（与游戏使用同一个应用目录）
func openGdataStore(slot string) (*game.PlacementStore, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[cityctl] 警告：存储目录不可用: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: config.AppName})
	if err != nil {
		return nil, fmt.Errorf("gdata init failed: %w", err)
	}
	return game.NewPlacementStore(m, slot)
}

// newCommand 构造命令树
//
// 参数:
//   - w: 命令输出
//   - open: 存档槽位打开方式
func newCommand(w io.Writer, open storeOpener) *cli.Command {
	return &cli.Command{
		Name:   "cityctl",
		Usage:  "inspect city scenarios and save slots",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "catalog", Value: defaultCatalogPath, Usage: "structure catalog file"},
			&cli.StringFlag{Name: "slot", Value: game.DefaultSlot, Usage: "save slot name"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable verbose logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if !cmd.Bool("verbose") {
				log.SetOutput(io.Discard)
				log.SetFlags(0)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "dry-run load scenarios against the catalog",
				ArgsUsage: "[scenario...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "treat unresolved scene objects as failures"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runValidate(w, cmd.String("catalog"), cmd.Args().Slice(), cmd.Bool("strict"))
				},
			},
			{
				Name:  "records",
				Usage: "list the records of a save slot",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := open(cmd.String("slot"))
					if err != nil {
						return err
					}
					printRecords(w, store)
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "copy a save slot into a SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Required: true, Usage: "SQLite database file"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := open(cmd.String("slot"))
					if err != nil {
						return err
					}
					return exportSlot(w, store, cmd.String("out"))
				},
			},
			{
				Name:  "import",
				Usage: "replace a save slot with the contents of a SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Required: true, Usage: "SQLite database file"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := open(cmd.String("slot"))
					if err != nil {
						return err
					}
					return importSlot(w, store, cmd.String("in"))
				},
			},
			{
				Name:  "clear",
				Usage: "empty a save slot",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := open(cmd.String("slot"))
					if err != nil {
						return err
					}
					if err := store.Clear(); err != nil {
						return err
					}
					fmt.Fprintf(w, "slot %s cleared\n", store.Slot())
					return nil
				},
			},
		},
	}
}

// runValidate 逐个加载场景，报告启动加载结果
func runValidate(w io.Writer, catalogPath string, scenarioPaths []string, strict bool) error {
	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	if len(scenarioPaths) == 0 {
		scenarioPaths = []string{defaultScenarioPath}
	}
	fmt.Fprintf(w, "catalog %s: %d definitions, categories %v\n", catalogPath, catalog.Len(), catalog.Categories())

	failed := 0
	for _, path := range scenarioPaths {
		report, city, err := dryRun(catalog, path)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			failed++
			continue
		}

		fmt.Fprintf(w, "%s: seeded %d, adopted %d, skipped %d, unresolved %d\n",
			path, report.Seeded, report.Reconciled, len(report.Skipped), len(report.Unresolved))
		for _, e := range report.Skipped {
			fmt.Fprintf(w, "  skipped: %v\n", e)
		}
		for _, name := range report.Unresolved {
			fmt.Fprintf(w, "  unresolved: %s\n", name)
		}
		fmt.Fprintf(w, "  money: %d\n", city.GetMoney())
		for _, name := range city.ResourceNames() {
			fmt.Fprintf(w, "  %s: %d\n", name, city.Resource(name))
		}

		if len(report.Skipped) > 0 || (strict && len(report.Unresolved) > 0) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed validation", failed, len(scenarioPaths))
	}
	return nil
}

// dryRun 在内存中执行一次启动加载
func dryRun(catalog *config.Catalog, path string) (*systems.InitReport, *game.CityState, error) {
	scenario, err := config.LoadScenarioConfig(path)
	if err != nil {
		return nil, nil, err
	}
	grid, err := utils.NewCoordinateGrid(scenario.Grid.CellSize,
		types.WorldPos{X: scenario.Grid.OriginX, Z: scenario.Grid.OriginZ},
		scenario.Grid.Width, scenario.Grid.Depth)
	if err != nil {
		return nil, nil, err
	}
	store, err := game.NewPlacementStore(nil, "")
	if err != nil {
		return nil, nil, err
	}

	em := ecs.NewEntityManager()
	for _, obj := range scenario.SceneObjects {
		entities.NewSceneObjectEntity(em, obj.Name, obj.Position, obj.Direction)
	}
	city := game.NewCityState(scenario.InitialMoney)

	system, err := systems.NewPlacementSystem(&systems.PlacementContext{
		Grid:          grid,
		Catalog:       catalog,
		Economy:       city,
		Zones:         game.NewZoneMap(scenario.Zones),
		Store:         store,
		EntityManager: em,
	}, scenario.Categories)
	if err != nil {
		return nil, nil, err
	}
	return system.Initialize(scenario.InitialPlacements), city, nil
}

// printRecords 按放置顺序输出记录
func printRecords(w io.Writer, store *game.PlacementStore) {
	records := store.Records()
	fmt.Fprintf(w, "slot %s: %d records, seeded %v\n", store.Slot(), len(records), store.IsSeeded())
	for _, rec := range records {
		fmt.Fprintf(w, "%-36s  %-10s %-12s %-6s %v\n", rec.Guid, rec.Category, rec.Identifier, rec.Direction, rec.Cell)
	}
}

// exportSlot 将槽位内容写入 SQLite 数据库的同名槽位
func exportSlot(w io.Writer, store *game.PlacementStore, path string) error {
	db, err := game.OpenSQLiteRecordStore(path, store.Slot())
	if err != nil {
		return err
	}
	defer db.Close()

	records := store.Records()
	if err := db.ReplaceAll(records, store.IsSeeded()); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %d records from slot %s to %s\n", len(records), store.Slot(), path)
	return nil
}

// importSlot 用 SQLite 数据库中同名槽位的内容替换存档
// 数据库中任何一条记录无法读取时不修改存档
func importSlot(w io.Writer, store *game.PlacementStore, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database %s does not exist", path)
		}
		return err
	}
	db, err := game.OpenSQLiteRecordStore(path, store.Slot())
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.LoadRecords()
	if err != nil {
		return fmt.Errorf("import aborted, slot %s unchanged: %w", store.Slot(), err)
	}
	if err := store.ReplaceAll(records, db.IsSeeded()); err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %d records from %s into slot %s\n", len(records), path, store.Slot())
	return nil
}
