package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/custodia-labs/geodist/internal/adapters/driving/tui"
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/logger"
)

// isTerminal reports whether stdout is a terminal. Tests replace it.
var isTerminal = func() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	logger.Warn("stdout is not a terminal, printing a table instead of the viewer")
	return false
}

// runViewer opens the interactive pair table on an existing result.
func runViewer(
	ctx context.Context,
	svc driving.ManifoldService,
	ids []domain.CentroidID,
	result *domain.ManifoldResult,
) error {
	app, err := tui.NewApp(&tui.Ports{Manifold: svc, IDs: ids}, result, result.K)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.WithContext(ctx), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
