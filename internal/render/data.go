package render

import (
	"html/template"

	"admin-console/internal/model"
)

// Pager carries the list query of a view into its template.
type Pager struct {
	View    string
	Search  string
	Filters map[string]string
	Index   int
	Pages   int
	Total   int
}

func (p Pager) Filter(key string) string {
	return p.Filters[key]
}

func (p Pager) HasPrev() bool { return p.Index > 1 }
func (p Pager) HasNext() bool { return p.Index < p.Pages }

// List is the data every list template receives. Rows is the backend's
// record slice, in backend order.
type List struct {
	Pager
	Rows  any
	Extra map[string]any
}

// Detail is the data every detail template receives.
type Detail struct {
	Record any
	Extra  map[string]any
}

type Dashboard struct {
	Stats         model.DashboardStats
	StatsError    bool
	Activities    []model.Activity
	ActivityError bool
}

type NavItem struct {
	Page   string
	Label  string
	Active bool
}

// Layout wraps a page fragment into the full console document.
type Layout struct {
	Title   string
	Page    string
	Body    template.HTML
	Profile model.Admin
	Nav     []NavItem
	Toasts  []string
}

type Login struct {
	Email      string
	Error      string
	Notice     string
	APIBaseURL string
}

// Dialog is a pending confirmation or prompt.
type Dialog struct {
	Message string
	Action  string
	Prompt  bool
	Field   string
	Error   string
	Cancel  string
	// Hidden carries form values submitted before the dialog opened.
	Hidden map[string]string
}
