// Package web embeds the dashboard templates and the standalone
// rating-widget script.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"rating-dashboard/domain/dto"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static/rating-widget.js
var widgetScript []byte

// WidgetScriptName is the file name of the standalone widget build.
const WidgetScriptName = "rating-widget.js"

// WidgetScript returns the bundled widget script.
func WidgetScript() []byte {
	return widgetScript
}

var funcs = template.FuncMap{
	"barWidth": func(pct float64) template.CSS {
		return template.CSS(fmt.Sprintf("width: %s%%", trimFloat(pct)))
	},
	"starClass": func(filled bool) string {
		if filled {
			return "star filled"
		}
		return "star"
	},
	"isStatus": func(status dto.ListStatus, want string) bool {
		return string(status) == want
	},
	"isModal": func(status dto.ModalStatus, want string) bool {
		return string(status) == want
	},
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// MustTemplates is Templates for process start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
