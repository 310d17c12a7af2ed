package client

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Presenter renders the session. Implementations must be safe to call from
// the goroutine running the Controller.
type Presenter interface {
	// RenderMessage appends a role-tagged block to the log and scrolls to it.
	RenderMessage(m Message)

	// RenderPlaceList shows a header followed by one card per place, in order.
	RenderPlaceList(places []PlaceView)

	// RenderMap replaces the current map.
	RenderMap(view MapView)

	// Notify shows a notice the user must see before continuing.
	Notify(text string)

	// SetBusy disables or re-enables sending.
	SetBusy(busy bool)
}

// TextPresenter writes plain text. It suits pipes and one-shot commands.
type TextPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextPresenter creates a TextPresenter writing to w.
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

func (p *TextPresenter) RenderMessage(m Message) {
	p.printf("%s: %s\n\n", roleLabel(m.Role), m.Content)
}

func (p *TextPresenter) RenderPlaceList(places []PlaceView) {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 Found %d places:\n", len(places))
	for i, place := range places {
		for j, line := range place.CardLines() {
			if j == 0 {
				fmt.Fprintf(&b, "  [%d] %s\n", i+1, line)
				continue
			}
			fmt.Fprintf(&b, "      %s\n", line)
		}
	}
	b.WriteString("\n")
	p.printf("%s", b.String())
}

func (p *TextPresenter) RenderMap(view MapView) {
	p.printf("🗺  %s\n\n", view.URL)
}

func (p *TextPresenter) Notify(text string) {
	p.printf("! %s\n\n", text)
}

// SetBusy is a no-op: plain output has no send control.
func (p *TextPresenter) SetBusy(bool) {}

func (p *TextPresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

func roleLabel(role string) string {
	switch role {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	}
	return role
}
