//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建应用目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面平台不需要额外的存储路径
func GetStoragePath() string {
	return ""
}
