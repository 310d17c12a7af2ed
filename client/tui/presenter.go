// Package tui is the terminal front end of the wayfinder chat client.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papercomputeco/wayfinder/client"
)

type (
	messageMsg client.Message
	placesMsg  []client.PlaceView
	mapMsg     client.MapView
	noticeMsg  string
	busyMsg    bool
)

// Presenter forwards client rendering calls into a running tea.Program.
// Calls made before a program is attached are held and replayed.
type Presenter struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

// NewPresenter creates a detached Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Attach routes messages to send, flushing anything queued so far first.
// tea.Program.Send blocks until the program runs, so call it from its own
// goroutine when attaching before Run.
func (p *Presenter) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, msg := range p.pending {
		send(msg)
	}
	p.pending = nil
	p.send = send
}

func (p *Presenter) RenderMessage(m client.Message) { p.dispatch(messageMsg(m)) }

func (p *Presenter) RenderPlaceList(places []client.PlaceView) { p.dispatch(placesMsg(places)) }

func (p *Presenter) RenderMap(view client.MapView) { p.dispatch(mapMsg(view)) }

func (p *Presenter) Notify(text string) { p.dispatch(noticeMsg(text)) }

func (p *Presenter) SetBusy(busy bool) { p.dispatch(busyMsg(busy)) }

func (p *Presenter) dispatch(msg tea.Msg) {
	p.mu.Lock()
	send := p.send
	if send == nil {
		p.pending = append(p.pending, msg)
	}
	p.mu.Unlock()

	if send != nil {
		send(msg)
	}
}
