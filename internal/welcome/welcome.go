// Package welcome is the application component the kernel falls back to
// when the configured application does not ship its own. It answers every
// request with a short page describing the resolved configuration.
package welcome

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Class is the catalog class of the welcome application.
const Class = "core.Welcome"

// translator is implemented by configurations that carry translations.
type translator interface {
	Translatef(key string, args ...any) string
}

// Application renders the welcome response.
type Application struct {
	conf registry.Configuration
}

// New is the catalog factory of the welcome application.
func New(tree.Map) (any, error) {
	return &Application{}, nil
}

func (a *Application) SetConfigurationObject(conf registry.Configuration) {
	a.conf = conf
}

// Page is the data behind every welcome response.
type Page struct {
	Application string `json:"application"`
	Module      string `json:"module"`
	Option      string `json:"option"`
	Context     string `json:"context"`
	Message     string `json:"message"`
}

func (a *Application) page() Page {
	get := func(keys ...string) string {
		if a.conf == nil {
			return ""
		}
		v, _ := a.conf.GetConfig(merger.SectionGeneral, keys...)
		return v.StringOr("")
	}

	p := Page{
		Application: get("application_display_name"),
		Module:      get("module"),
		Option:      get("option"),
		Context:     get("parameters", "context"),
	}

	p.Message = fmt.Sprintf("Welcome to %s", p.Application)
	if t, ok := a.conf.(translator); ok {
		p.Message = t.Translatef("Welcome to %s", p.Application)
	}

	return p
}

// Main renders the page in general.output_format: json, text or html.
func (a *Application) Main() string {
	p := a.page()

	format := "html"
	if a.conf != nil {
		v, _ := a.conf.GetConfig(merger.SectionGeneral, "output_format")
		format = strings.ToLower(v.StringOr(format))
	}

	switch format {
	case "json":
		out, err := json.Marshal(p)
		if err != nil {
			return "{}"
		}
		return string(out)
	case "text":
		return fmt.Sprintf("%s\nmodule: %s\noption: %s\ncontext: %s\n", p.Message, p.Module, p.Option, p.Context)
	default:
		return fmt.Sprintf("<h1>%s</h1><p>%s / %s</p>",
			html.EscapeString(p.Message), html.EscapeString(p.Module), html.EscapeString(p.Option))
	}
}
