package embedded

import (
	"testing"
	"testing/fstest"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/catalog.yaml":             {Data: []byte("structures: []\n")},
		"data/scenarios/tutorial.yaml":  {Data: []byte("id: tutorial\n")},
		"data/scenarios/sandbox.yaml":   {Data: []byte("id: sandbox\n")},
		"data/scenarios/notes.txt":      {Data: []byte("notes")},
		"other/outside_data_prefix.txt": {Data: []byte("x")},
	}
}

// TestNotInitialized 测试未初始化时的行为
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false")
	}
	if _, err := ReadFile("data/catalog.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile() error = %v, want errNotInitialized", err)
	}
	if _, err := Open("data/catalog.yaml"); err != errNotInitialized {
		t.Errorf("Open() error = %v, want errNotInitialized", err)
	}
	if _, err := Glob("data/*.yaml"); err != errNotInitialized {
		t.Errorf("Glob() error = %v, want errNotInitialized", err)
	}
	if Exists("data/catalog.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(newTestFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/catalog.yaml", "structures: []\n", false},
		{"带 ./ 前缀", "./data/scenarios/tutorial.yaml", "id: tutorial\n", false},
		{"文件不存在", "data/missing.yaml", "", true},
		{"非 data 前缀", "other/outside_data_prefix.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestGlobAndReadDir 测试目录操作
func TestGlobAndReadDir(t *testing.T) {
	Init(newTestFS())
	defer Init(nil)

	matches, err := Glob("data/scenarios/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 scenarios", matches)
	}

	entries, err := ReadDir("data/scenarios")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("ReadDir() returned %d entries, want 3", len(entries))
	}

	if !Exists("data/catalog.yaml") || Exists("data/nope.yaml") {
		t.Error("Exists() mismatch")
	}
	if !IsDataPath("./data/catalog.yaml") || IsDataPath("assets/x.png") {
		t.Error("IsDataPath() mismatch")
	}
}
