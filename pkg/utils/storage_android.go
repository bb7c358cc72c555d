//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 初始化前创建 /data/data/{package}/saves
// gdata 在 Android 上不会预先创建子目录
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	return ensureWritableDir(filepath.Join(root, "saves"))
}

// GetStoragePath 返回应用私有目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	pkg, err := androidPackage()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}

// androidPackage 从 /proc/self/cmdline 读取包名（第一个参数）
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
