package app

import (
	"fmt"

	"github.com/gonewx/citybuilder/pkg/config"
	"github.com/gonewx/citybuilder/pkg/types"
	"github.com/gonewx/citybuilder/pkg/utils"
)

// toolKind 工具栏按钮的种类
type toolKind int

const (
	toolPlace toolKind = iota
	toolRemove
	toolRemoveAll
	toolMove
	toolRotate
	toolCancel
)

// tool 工具栏按钮
type tool struct {
	kind       toolKind
	label      string
	definition string // toolPlace
	category   string // toolRemove
}

// buildTools 为目录中的每个建筑生成放置按钮，然后是拆除和编辑按钮
// shortcuts 为 false 时（触屏设备）标签不带快捷键
func buildTools(catalog *config.Catalog, categories []string, shortcuts bool) []tool {
	key := func(k, label string) string {
		if !shortcuts {
			return label
		}
		return k + " " + label
	}

	tools := make([]tool, 0, catalog.Len()+len(categories)+4)
	for i, def := range catalog.Definitions() {
		label := fmt.Sprintf("%s $%d", def.Name, def.Cost)
		if i < 9 {
			label = key(fmt.Sprint(i+1), label)
		}
		if def.Unique {
			label += " *"
		}
		tools = append(tools, tool{kind: toolPlace, label: label, definition: def.ID})
	}
	for _, c := range categories {
		tools = append(tools, tool{kind: toolRemove, label: key("X", "Remove "+c), category: c})
	}
	return append(tools,
		tool{kind: toolRemoveAll, label: key("Shift+X", "Remove all")},
		tool{kind: toolMove, label: key("M", "Move")},
		tool{kind: toolRotate, label: key("R", "Rotate")},
		tool{kind: toolCancel, label: key("Esc", "Cancel")},
	)
}

// pointerInput 在 EbitenInput 的基础上屏蔽工具栏区域
// 指针在工具栏上时不更新悬停格子，被工具栏消费的点击不转发给放置引擎
type pointerInput struct {
	*utils.EbitenInput
	clickConsumed bool
}

func (in *pointerInput) PointerWorldPosition() (types.WorldPos, bool) {
	x, _ := utils.GetPointerPosition()
	if x >= config.ViewportWidth {
		return types.WorldPos{}, false
	}
	return in.EbitenInput.PointerWorldPosition()
}

func (in *pointerInput) JustTriggered(ev types.InputEvent) bool {
	if ev == types.InputClick && in.clickConsumed {
		return false
	}
	return in.EbitenInput.JustTriggered(ev)
}
