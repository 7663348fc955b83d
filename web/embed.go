// Package web 打包结账页的模板和静态资源
package web

import (
	"embed"
	"html/template"
)

//go:embed templates static
var FS embed.FS

// Templates 解析所有页面模板
func Templates() *template.Template {
	return template.Must(template.ParseFS(FS, "templates/*.html"))
}
