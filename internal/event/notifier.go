package event

import (
	"html/template"
	"sync"
)

// Notifier publishes console events and keeps toasts until the next full
// page render picks them up.
type Notifier struct {
	bus Bus

	mu    sync.Mutex
	flash []string
}

func NewNotifier(bus Bus) *Notifier {
	return &Notifier{bus: bus}
}

func (n *Notifier) Toast(message string, failed bool) {
	if message == "" {
		return
	}

	n.mu.Lock()
	n.flash = append(n.flash, message)
	n.mu.Unlock()

	n.bus.Publish(New(TypeToast, ToastPayload{Message: message, Failed: failed}))
}

// Drain returns and forgets the queued toasts.
func (n *Notifier) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.flash
	n.flash = nil
	return out
}

func (n *Notifier) Rendered(page string, body template.HTML) {
	n.bus.Publish(New(TypeRender, RenderPayload{Page: page, HTML: string(body)}))
}

func (n *Notifier) SessionCleared() {
	n.bus.Publish(New(TypeSessionCleared, nil))
}
