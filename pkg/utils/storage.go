package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ensureWritableDir 创建目录并写入探测文件，确认存档可以落盘
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}
