package tui

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geodist/internal/core/domain"
)

// App is the pair table viewer following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	table  table.Model
	help   help.Model
	status *status.Bar

	result          *domain.ManifoldResult
	k               int
	sort            messages.SortMode
	hideUnreachable bool
	showHelp        bool
	err             error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// columns of the pair table.
var columns = []table.Column{
	{Title: "A", Width: 16},
	{Title: "B", Width: 16},
	{Title: "Geodesic", Width: 12},
	{Title: "Direct", Width: 10},
	{Title: "Route", Width: 8},
	{Title: "Stretch", Width: 8},
}

// NewApp creates a viewer. If result is nil the first estimate runs with k
// when the program starts.
func NewApp(ports *Ports, result *domain.ManifoldResult, k int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if result != nil {
		k = result.K
	}
	if k <= 0 {
		k = domain.DefaultK
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(s.Table)

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		table:  t,
		help:   help.New(),
		status: status.NewBar(s, km),
		result: result,
		k:      k,
	}
	a.refresh()
	return a, nil
}

// WithContext sets the context used for estimate runs.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.result == nil {
		return a.requestEstimate(a.k)
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetHeight(max(3, msg.Height-6))
		a.status.SetWidth(msg.Width)
		a.help.Width = msg.Width
		return a, nil

	case messages.EstimateRequested:
		return a, a.requestEstimate(msg.K)

	case messages.EstimateCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.result = msg.Result
		a.k = msg.Result.K
		a.status.SetState(status.StateReady)
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case key.Matches(msg, a.keymap.Sort):
		a.sort = a.sort.Next()
		a.refresh()
		return a, nil
	case key.Matches(msg, a.keymap.Filter):
		a.hideUnreachable = !a.hideUnreachable
		a.refresh()
		return a, nil
	case key.Matches(msg, a.keymap.MoreNeighbors):
		return a, a.requestEstimate(a.k + 1)
	case key.Matches(msg, a.keymap.FewerNeighbors):
		if a.k <= 1 {
			return a, nil
		}
		return a, a.requestEstimate(a.k - 1)
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// requestEstimate returns a command that runs the estimate off the UI loop.
func (a *App) requestEstimate(k int) tea.Cmd {
	a.status.SetState(status.StateEstimating)
	a.status.SetRun(k, 0)

	ctx := a.ctx
	manifold := a.ports.Manifold
	ids := a.ports.IDs
	return func() tea.Msg {
		var (
			result *domain.ManifoldResult
			err    error
		)
		if len(ids) == 0 {
			result, err = manifold.EstimateAll(ctx, k)
		} else {
			result, err = manifold.Estimate(ctx, ids, k)
		}
		return messages.EstimateCompleted{Result: result, Err: err}
	}
}

// refresh rebuilds the table rows from the current result and view options.
func (a *App) refresh() {
	rows := buildRows(a.result, a.sort, a.hideUnreachable)
	a.table.SetRows(rows)
	a.status.SetRun(a.k, len(rows))
	a.status.SetSort(a.sort.String())
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	title := "geodist"
	if a.result != nil {
		title = fmt.Sprintf("geodist  %d centroids  %d edges  run %s",
			a.result.Matrix.Len(), a.result.Graph.EdgeCount(), shortRunID(a.result.RunID))
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Border.Render(a.table.View()))
	b.WriteString("\n")

	if a.showHelp {
		b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
		b.WriteString("\n")
	}
	b.WriteString(a.status.View())

	return b.String()
}

// Result returns the result currently displayed.
func (a *App) Result() *domain.ManifoldResult {
	return a.result
}

// K returns the current neighbourhood size.
func (a *App) K() int {
	return a.k
}

// Err returns the last estimate error.
func (a *App) Err() error {
	return a.err
}

// Rows returns the visible table rows.
func (a *App) Rows() []table.Row {
	return a.table.Rows()
}

type pairRow struct {
	entry   domain.PairGeodesic
	direct  float64
	stretch float64
}

func buildRows(result *domain.ManifoldResult, mode messages.SortMode, hideUnreachable bool) []table.Row {
	if result == nil || result.Table == nil {
		return nil
	}

	entries := result.Table.Entries()
	pairs := make([]pairRow, 0, len(entries))
	for _, e := range entries {
		if hideUnreachable && !e.Geodesic.Reachable {
			continue
		}
		direct, _ := result.Matrix.Distance(e.A, e.B)
		stretch := math.NaN()
		if e.Geodesic.Reachable && direct > 0 {
			stretch = e.Geodesic.Distance / direct
		}
		pairs = append(pairs, pairRow{entry: e, direct: direct, stretch: stretch})
	}

	switch mode {
	case messages.SortByDistance:
		sort.SliceStable(pairs, func(i, j int) bool {
			return pairs[i].entry.Geodesic.Distance < pairs[j].entry.Geodesic.Distance
		})
	case messages.SortByStretch:
		sort.SliceStable(pairs, func(i, j int) bool {
			return stretchKey(pairs[i].stretch) > stretchKey(pairs[j].stretch)
		})
	}

	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		rows[i] = table.Row{
			string(p.entry.A),
			string(p.entry.B),
			p.entry.Geodesic.String(),
			fmt.Sprintf("%.6f", p.direct),
			routeLabel(p.entry),
			stretchLabel(p.stretch),
		}
	}
	return rows
}

func routeLabel(e domain.PairGeodesic) string {
	switch {
	case !e.Geodesic.Reachable:
		return "none"
	case e.Direct:
		return "edge"
	default:
		return "routed"
	}
}

func stretchLabel(s float64) string {
	if math.IsNaN(s) {
		return "-"
	}
	return fmt.Sprintf("%.2f", s)
}

// stretchKey sorts undefined stretch below every real value.
func stretchKey(s float64) float64 {
	if math.IsNaN(s) {
		return math.Inf(-1)
	}
	return s
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
