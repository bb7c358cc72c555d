package config

import (
	"testing"
	"testing/fstest"

	"github.com/gonewx/citybuilder/pkg/embedded"
)

// TestLoadFromEmbeddedData 测试 data/ 路径从嵌入数据读取
func TestLoadFromEmbeddedData(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/catalog.yaml":        {Data: []byte("structures:\n  - id: road\n")},
		"data/scenarios/demo.yaml": {Data: []byte("id: demo\ngrid: {width: 8, depth: 6}\n")},
	})
	defer embedded.Init(nil)

	catalog, err := LoadCatalog("data/catalog.yaml")
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if catalog.Len() != 1 {
		t.Errorf("catalog has %d definitions, want 1", catalog.Len())
	}

	scenario, err := LoadScenarioConfig("./data/scenarios/demo.yaml")
	if err != nil {
		t.Fatalf("LoadScenarioConfig() error: %v", err)
	}
	if scenario.Grid.Width != 8 || scenario.Grid.Depth != 6 {
		t.Errorf("grid = %dx%d, want 8x6", scenario.Grid.Width, scenario.Grid.Depth)
	}

	if _, err := LoadCatalog("data/missing.yaml"); err == nil {
		t.Error("missing embedded file should fail")
	}
}
