// Package render maps fetched backend records to HTML fragments. Output
// depends only on its input so repeated renders are byte-identical.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"admin-console/internal/model"
)

//go:embed templates/*.html
var embedded embed.FS

//go:embed static
var static embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type Renderer struct {
	dir string

	mu   sync.RWMutex
	tmpl *template.Template
}

// New parses the embedded templates, or the *.html files in dir when dir
// is set.
func New(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) Reload() error {
	var (
		source  fs.FS = embedded
		pattern       = "templates/*.html"
	)
	if r.dir != "" {
		source = os.DirFS(r.dir)
		pattern = "*.html"
	}

	tmpl, err := template.New("console").Funcs(funcs()).ParseFS(source, pattern)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Render executes the named template into an HTML fragment.
func (r *Renderer) Render(name string, data any) (template.HTML, error) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Placeholder renders the empty-state block shown in place of data.
func (r *Renderer) Placeholder(message string) template.HTML {
	out, err := r.Render("placeholder", message)
	if err != nil {
		return template.HTML(`<div class="empty-state">` + template.HTMLEscapeString(message) + `</div>`)
	}
	return out
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"orNA":     orNA,
		"truncate": truncate,
		"date":     formatDate("2006-01-02"),
		"datetime": formatDate("2006-01-02 15:04"),
		"humanize": humanize,
		"carBadge": carBadge,
		"money":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"add":      func(a, b int) int { return a + b },
		"list":     func(items ...string) []string { return items },
		"dict":     dict,
		"selected": func(current, value string) template.HTMLAttr {
			if current == value {
				return "selected"
			}
			return ""
		},
	}
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func orNA(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		if strings.TrimSpace(t) == "" {
			return "N/A"
		}
		return t
	case int:
		if t == 0 {
			return "N/A"
		}
		return fmt.Sprint(t)
	case int64:
		if t == 0 {
			return "N/A"
		}
		return fmt.Sprint(t)
	case float64:
		if t == 0 {
			return "N/A"
		}
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}

func truncate(s string, n int) string {
	if s == "" {
		return "N/A"
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func formatDate(layout string) func(string) string {
	return func(raw string) string {
		if strings.TrimSpace(raw) == "" {
			return "N/A"
		}
		for _, candidate := range timestampLayouts {
			if t, err := time.Parse(candidate, raw); err == nil {
				return t.Format(layout)
			}
		}
		return raw
	}
}

// humanize turns "car_approved" into "Car Approved".
func humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(string(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func carBadge(status string) string {
	switch status {
	case model.CarVerified:
		return "active"
	case model.CarDenied:
		return "inactive"
	default:
		return ""
	}
}
