// Package templates holds the HTML pages, email bodies and static assets.
package templates

import (
	"embed"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed *.html *.txt static
var files embed.FS

// Pages are the HTML templates, each rendered through base.html.
var Pages = htmltemplate.Must(htmltemplate.ParseFS(files, "*.html"))

// Emails are the plain-text email bodies.
var Emails = texttemplate.Must(texttemplate.New("emails").Funcs(texttemplate.FuncMap{
	"hours": func(seconds float64) float64 { return seconds / 3600 },
}).ParseFS(files, "*.txt"))

// Static serves availability.js and friends.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
