package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// StaticFS 返回 static 目录下的文件，路径不带 static/ 前缀。
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
