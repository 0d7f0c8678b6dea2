package action

import (
	"context"
	"net/url"
	"strings"

	"admin-console/internal/render"
)

// Dialog asks the admin before a mutation runs.
type Dialog interface {
	Confirm(ctx context.Context, message string) bool
	Prompt(ctx context.Context, message string) (string, bool)
}

// FormDialog answers questions from submitted form values. A question with
// no answer in the values is kept so the caller can render it.
type FormDialog struct {
	values   url.Values
	field    string
	asked    *render.Dialog
	answered bool
}

// NewFormDialog reads confirmations from the "confirm" field and prompt
// answers from field.
func NewFormDialog(values url.Values, field string) *FormDialog {
	if values == nil {
		values = url.Values{}
	}
	if field == "" {
		field = "answer"
	}
	return &FormDialog{values: values, field: field}
}

func (d *FormDialog) Confirm(_ context.Context, message string) bool {
	d.asked = &render.Dialog{Message: message}
	d.answered = d.values.Get("confirm") == "yes"
	return d.answered
}

func (d *FormDialog) Prompt(_ context.Context, message string) (string, bool) {
	d.asked = &render.Dialog{Message: message, Prompt: true, Field: d.field}
	d.answered = d.values.Has(d.field)
	return d.values.Get(d.field), d.answered
}

// Pending returns the unanswered question, if any.
func (d *FormDialog) Pending() (render.Dialog, bool) {
	if d.asked == nil || d.answered {
		return render.Dialog{}, false
	}
	return d.Question(), true
}

// Question returns the last question asked, answered or not, so it can be
// shown again with a validation error. Values that arrived with the
// request are carried as hidden fields.
func (d *FormDialog) Question() render.Dialog {
	if d.asked == nil {
		return render.Dialog{}
	}

	out := *d.asked
	out.Hidden = map[string]string{}
	for key := range d.values {
		if key == "confirm" || key == d.field || key == "from" || key == "name" {
			continue
		}
		out.Hidden[key] = strings.TrimSpace(d.values.Get(key))
	}
	return out
}

// Answers is a fixed-answer Dialog for non-interactive callers.
type Answers struct {
	Accept bool
	Reply  *string
}

func (a Answers) Confirm(context.Context, string) bool { return a.Accept }

func (a Answers) Prompt(context.Context, string) (string, bool) {
	if a.Reply == nil {
		return "", false
	}
	return *a.Reply, true
}
