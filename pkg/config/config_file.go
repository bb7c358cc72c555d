package config

import (
	"os"

	"github.com/gonewx/citybuilder/pkg/embedded"
)

// readConfigFile 读取配置文件
// "data/" 开头的路径在嵌入数据已初始化时从嵌入数据读取，否则从磁盘读取
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.IsDataPath(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
