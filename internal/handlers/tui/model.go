// Package tui is the terminal front-end of the dashboard. It translates
// terminal events for the dashboard router, carries out the effects the router
// returns and renders the dashboard state.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/transferscope/internal/dashboard"
	"github.com/gabapcia/transferscope/internal/loader"
	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/query"
	"github.com/gabapcia/transferscope/internal/transfer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const defaultOutputDir = "outputs"

type (
	// progressMsg reports a batch of the run identified by RunID.
	progressMsg loader.Progress

	// loadedMsg carries the result of a completed run.
	loadedMsg loader.Result

	// loadFailedMsg ends a run without results.
	loadFailedMsg struct {
		runID uuid.UUID
		err   error
	}
)

type config struct {
	outputDir string
	query     *query.WalletQuery
	updates   <-chan loader.Progress
}

// Option configures a Model.
type Option func(*config)

// WithOutputDir sets the directory saved transfers are written to.
func WithOutputDir(dir string) Option {
	return func(c *config) {
		if dir != "" {
			c.outputDir = dir
		}
	}
}

// WithQuery prefills the query builder and opens the dashboard on it.
func WithQuery(q query.WalletQuery) Option {
	return func(c *config) {
		c.query = &q
	}
}

// WithProgress sets the channel run progress is read from. See ForwardProgress.
func WithProgress(updates <-chan loader.Progress) Option {
	return func(c *config) {
		c.updates = updates
	}
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx       context.Context
	loader    Loader
	router    dashboard.Router
	updates   <-chan loader.Progress
	outputDir string

	state *dashboard.State
	query query.WalletQuery

	// store is the result of the last completed run. A new run empties it and
	// only a completed run replaces it, so rendering never sees a run in progress.
	store    *transfer.Store
	loaded   query.WalletQuery
	runID    uuid.UUID
	progress loader.Progress

	width  int
	height int
}

var _ tea.Model = (*Model)(nil)

// NewModel returns the dashboard model. Runs started from it use ctx as parent.
func NewModel(ctx context.Context, l Loader, opts ...Option) *Model {
	cfg := config{outputDir: defaultOutputDir}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Model{
		ctx:       ctx,
		loader:    l,
		router:    dashboard.NewRouter(),
		updates:   cfg.updates,
		outputDir: cfg.outputDir,
		state:     dashboard.NewState(),
		query:     query.New(),
		store:     transfer.NewStore(),
	}

	if cfg.query != nil {
		m.query = *cfg.query
		m.state.Screen = dashboard.ScreenQueryBuilder
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return waitForProgress(m.updates)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		var cmds []tea.Cmd
		for _, key := range toKeys(msg) {
			effect := m.router.Handle(m.state, &m.query, key)
			if cmd := m.apply(effect); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		switch len(cmds) {
		case 0:
			return m, nil
		case 1:
			return m, cmds[0]
		}
		return m, tea.Batch(cmds...)

	case progressMsg:
		if msg.RunID == m.runID {
			m.progress = loader.Progress(msg)
		}
		return m, waitForProgress(m.updates)

	case loadedMsg:
		if msg.RunID != m.runID {
			return m, nil
		}
		m.runID = uuid.Nil
		m.store = msg.Store
		m.loaded = msg.Query
		m.state.CompleteLoad(m.store.Lengths())
		return m, nil

	case loadFailedMsg:
		if msg.runID != m.runID {
			return m, nil
		}
		m.runID = uuid.Nil
		if errors.Is(msg.err, loader.ErrCanceled) || errors.Is(msg.err, loader.ErrSuperseded) {
			return m, nil
		}
		m.store.Reset()
		m.state.FailLoad(msg.err)
		return m, nil
	}

	return m, nil
}

func (m *Model) apply(effect dashboard.Effect) tea.Cmd {
	switch effect {
	case dashboard.EffectStartLoad:
		req := loader.NewRequest(m.query)
		m.runID = req.ID
		m.store.Reset()
		m.progress = loader.Progress{RunID: req.ID}
		return m.load(req)

	case dashboard.EffectCancelLoad:
		m.runID = uuid.Nil
		m.loader.Cancel()
		return nil

	case dashboard.EffectSaveOutput:
		m.save()
		return nil

	case dashboard.EffectQuit:
		m.loader.Cancel()
		return tea.Quit
	}

	return nil
}

func (m *Model) load(req loader.Request) tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		result, err := l.Load(ctx, req)
		if err != nil {
			return loadFailedMsg{runID: req.ID, err: err}
		}
		return loadedMsg(result)
	}
}

func (m *Model) save() {
	path, err := transfer.WriteFile(m.outputDir, m.loaded.Address, m.loaded.Chain.String(), m.store.Snapshot())
	if err != nil {
		logger.Error(m.ctx, "failed to save transfers",
			"output.dir", m.outputDir,
			"error", err,
		)
		m.state.Err = err
		return
	}

	logger.Info(m.ctx, "transfers saved", "output.path", path)
	m.state.Notice = fmt.Sprintf("saved to %s", path)
}

func waitForProgress(updates <-chan loader.Progress) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}
