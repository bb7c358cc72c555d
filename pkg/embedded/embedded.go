// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的建筑目录和场景配置。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// dataPrefix 嵌入数据的路径前缀
const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化嵌入数据
// 必须在 main() 开始时、任何配置加载之前调用
// 参数 data 的根目录应包含 data/ 子目录（embed.FS 即满足）
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// IsDataPath 检查路径是否指向嵌入数据
func IsDataPath(path string) bool {
	return strings.HasPrefix(normalize(path), dataPrefix)
}

// normalize 统一路径格式
func normalize(path string) string {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// resolve 检查初始化状态和路径前缀
func resolve(path string) (string, error) {
	if !initialized {
		return "", errNotInitialized
	}
	path = normalize(path)
	if !strings.HasPrefix(path, dataPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入文件
// 路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于嵌入数据中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入数据中匹配文件
func Glob(pattern string) ([]string, error) {
	pattern, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, path)
}
