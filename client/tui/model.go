package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/papercomputeco/wayfinder/client"
)

const (
	headerHeight = 2
	footerHeight = 3
)

const helpText = "enter send · /go N directions to place N · /mode driving|walking|bicycling|transit · /quit"

// Actions is what the model asks of the chat controller.
type Actions interface {
	Send(ctx context.Context, text string) error
	SelectPlace(ctx context.Context, index int) error
	SetMode(mode string) error
}

// actionDoneMsg reports the outcome of a command run off the UI loop.
type actionDoneMsg struct {
	err error
}

// entryKind tells how a log entry renders.
type entryKind int

const (
	entryMessage entryKind = iota
	entryPlaces
	entryMap
	entryNotice
)

type entry struct {
	kind    entryKind
	message client.Message
	places  []client.PlaceView
	view    client.MapView
	notice  string
}

// Model is the bubbletea model of the chat screen.
type Model struct {
	ctx     context.Context
	actions Actions
	styles  Styles

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	entries []entry
	busy    bool
	width   int
	ready   bool
}

// NewModel creates the chat screen model.
func NewModel(ctx context.Context, actions Actions, styles Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about places nearby... (Enter to send, Ctrl+C to exit)"
	ti.Prompt = "│ "
	ti.CharLimit = 2048
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:      ctx,
		actions:  actions,
		styles:   styles,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		width:    80,
	}
	m.renderer = newRenderer(styles.Theme, 80)
	return m
}

func newRenderer(t Theme, width int) *glamour.TermRenderer {
	style := glamour.WithStandardStyle("light")
	if t.IsDark {
		style = glamour.WithStandardStyle("dark")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			cmd, quit := m.submit()
			if quit {
				return m, tea.Quit
			}
			return m, cmd
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.input.Width = msg.Width - 4
		m.renderer = newRenderer(m.styles.Theme, msg.Width-4)
		m.ready = true
		m.refresh()
		return m, nil

	case messageMsg:
		m.append(entry{kind: entryMessage, message: client.Message(msg)})
		return m, nil

	case placesMsg:
		m.append(entry{kind: entryPlaces, places: msg})
		return m, nil

	case mapMsg:
		m.append(entry{kind: entryMap, view: client.MapView(msg)})
		return m, nil

	case noticeMsg:
		m.append(entry{kind: entryNotice, notice: string(msg)})
		return m, nil

	case busyMsg:
		m.busy = bool(msg)
		if m.busy {
			return m, m.spinner.Tick
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.append(entry{kind: entryNotice, notice: describeError(msg.err)})
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit handles the input line. It reports whether the user asked to quit.
func (m *Model) submit() (tea.Cmd, bool) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil, false
	}

	if !strings.HasPrefix(text, "/") {
		if m.busy {
			m.append(entry{kind: entryNotice, notice: "Still waiting for the last answer."})
			return nil, false
		}
		m.input.Reset()
		ctx, actions := m.ctx, m.actions
		return func() tea.Msg {
			return actionDoneMsg{err: actions.Send(ctx, text)}
		}, false
	}

	m.input.Reset()
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit":
		return nil, true

	case "/go":
		if len(fields) != 2 {
			m.append(entry{kind: entryNotice, notice: "Usage: /go N"})
			return nil, false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			m.append(entry{kind: entryNotice, notice: "Place number must be 1 or more."})
			return nil, false
		}
		ctx, actions := m.ctx, m.actions
		return func() tea.Msg {
			return actionDoneMsg{err: actions.SelectPlace(ctx, n-1)}
		}, false

	case "/mode":
		if len(fields) != 2 {
			m.append(entry{kind: entryNotice, notice: "Usage: /mode driving|walking|bicycling|transit"})
			return nil, false
		}
		if err := m.actions.SetMode(fields[1]); err != nil {
			m.append(entry{kind: entryNotice, notice: err.Error()})
			return nil, false
		}
		m.append(entry{kind: entryNotice, notice: "Travel mode set to " + fields[1] + "."})
		return nil, false
	}

	m.append(entry{kind: entryNotice, notice: "Unknown command " + fields[0] + ". " + helpText})
	return nil, false
}

// describeError turns a controller error into a notice. Errors the
// controller already surfaced render nothing new.
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrNoLocation):
		return ""
	case errors.Is(err, client.ErrBusy):
		return "Still waiting for the last answer."
	case errors.Is(err, client.ErrNoSuchPlace):
		return "There is no place with that number."
	}
	var terr *client.TransportError
	if errors.As(err, &terr) {
		return ""
	}
	return err.Error()
}

func (m *Model) append(e entry) {
	if e.kind == entryNotice && e.notice == "" {
		return
	}
	m.entries = append(m.entries, e)
	m.refresh()
}

func (m *Model) refresh() {
	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		blocks = append(blocks, m.renderEntry(e))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderEntry(e entry) string {
	switch e.kind {
	case entryMessage:
		if e.message.Role == client.RoleUser {
			return m.styles.UserLabel.Render("You") + "\n" + e.message.Content + "\n"
		}
		return m.styles.BotLabel.Render("Assistant") + "\n" + m.markdown(e.message.Content)

	case entryPlaces:
		var b strings.Builder
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("📍 Found %d places", len(e.places))))
		b.WriteString("\n")
		for i, p := range e.places {
			lines := p.CardLines()
			b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, m.styles.PlaceName.Render(lines[0])))
			for _, line := range lines[1:] {
				b.WriteString(m.styles.PlaceLine.Render(line))
				b.WriteString("\n")
			}
		}
		return b.String()

	case entryMap:
		url := e.view.URL
		if m.width > 8 {
			// Embed URLs have no spaces to break on.
			url = ansi.Hardwrap(url, m.width-4, false)
		}
		return m.styles.MapLine.Render("🗺  "+url) + "\n"

	case entryNotice:
		return m.styles.Notice.Render("! "+e.notice) + "\n"
	}
	return ""
}

func (m *Model) markdown(content string) string {
	if m.renderer == nil {
		return content + "\n"
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

func (m Model) View() string {
	status := m.styles.Help.Render(helpText)
	if m.busy {
		status = m.spinner.View() + " " + m.styles.Help.Render("Thinking...")
	}

	return m.styles.Header.Render("wayfinder") + "\n\n" +
		m.viewport.View() + "\n" +
		m.input.View() + "\n" +
		status
}
