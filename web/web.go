// Package web holds the embedded page templates.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templates embed.FS

// Engine returns a template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("add", func(a, b int) int { return a + b })
	return engine
}
