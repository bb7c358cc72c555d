//go:build !mobile

// Package mobile 的桌面端占位
//
// 普通构建（不带 -tags mobile）时没有嵌入数据，也不注册游戏，
// 只保留 Dummy 使 ./... 能够正常编译。
package mobile

// Dummy 是一个空导出函数，与移动端构建保持相同的导出符号
func Dummy() {}
