package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the chat screen until the user quits or ctx ends. presenter must
// be the one the controller behind actions renders to.
func Run(ctx context.Context, actions Actions, presenter *Presenter) error {
	model := NewModel(ctx, actions, NewStyles(DetectTheme()))

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	go presenter.Attach(p.Send)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run chat ui: %w", err)
	}
	return nil
}
