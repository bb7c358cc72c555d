//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// //go:embed 只能嵌入包目录下的文件，构建前需要把根目录的 data/ 复制到 mobile/data：
//
//	cp -r data mobile/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/catalog.yaml data/scenarios
var dataFS embed.FS
