//go:build !mobile

package utils

import "os"

// TouchEmulateEnv 设置为 1 时桌面端按触屏设备处理（工具栏不显示快捷键，禁用 F11）
const TouchEmulateEnv = "CITYBUILDER_TOUCH"

// IsMobile 桌面端编译时只在设置了 TouchEmulateEnv 时返回 true
func IsMobile() bool {
	return os.Getenv(TouchEmulateEnv) == "1"
}
