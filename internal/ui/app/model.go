// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/jeranaias/tabq/internal/commands"
	"github.com/jeranaias/tabq/internal/dispatch"
	"github.com/jeranaias/tabq/internal/ingest"
	"github.com/jeranaias/tabq/internal/picker"
	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/tables"
	"github.com/jeranaias/tabq/internal/ui/render"
	"github.com/jeranaias/tabq/internal/ui/styles"
)

// pickTitle is the title handed to external file dialogs.
const pickTitle = "Choose a data file"

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires the model to its collaborators.
type Options struct {
	Dispatcher *dispatch.Dispatcher
	Registry   *tables.Registry
	Theme      *styles.Theme
	Session    session.Options

	// ColumnWidth is the fixed grid column width in cells.
	ColumnWidth int

	// Driver is shown in the status bar.
	Driver string

	// Picker is the external file dialog. Nil selects the in-terminal
	// browser.
	Picker   picker.Picker
	StartDir string

	// StartupFiles are registered in order before the first key press.
	StartupFiles []string

	// PickOnStart runs the create-table flow once after StartupFiles.
	PickOnStart bool

	// Changes delivers registered files that changed on disk.
	Changes <-chan []string

	Log zerolog.Logger

	// Ctx bounds every dispatch. Defaults to context.Background.
	Ctx context.Context
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the console's tea.Model.
type Model struct {
	opts  Options
	disp  *dispatch.Dispatcher
	reg   *tables.Registry
	theme *styles.Theme
	log   zerolog.Logger
	ctx   context.Context

	sess    *session.Session
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	helpDoc *helpView

	// busy is true while a dispatch runs; key presses are dropped.
	busy bool

	// browser is the open file dialog, if any. browserTyped and
	// browserText describe the submission that opened it.
	browser      *browser
	browserTyped bool
	browserText  string

	showHelp bool
	startup  bool
	quitting bool

	width, height int
}

// New creates the model.
func New(opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.ColumnWidth <= 0 {
		opts.ColumnWidth = session.DefaultColumnWidth
	}
	if opts.Registry == nil {
		opts.Registry = tables.NewRegistry()
	}

	keys := DefaultKeyMap()
	var cmds *commands.Registry
	if opts.Dispatcher != nil {
		cmds = opts.Dispatcher.Commands()
	}

	m := Model{
		opts:    opts,
		disp:    opts.Dispatcher,
		reg:     opts.Registry,
		theme:   opts.Theme,
		log:     opts.Log,
		ctx:     opts.Ctx,
		sess:    session.New(opts.Session),
		keys:    keys,
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(styles.BusySpinner)),
		helpDoc: &helpView{
			markdown: helpMarkdown(keys, cmds),
			dark:     opts.Theme.IsDark,
			plain:    opts.Theme.ColorProfile == termenv.Ascii,
		},
	}
	m.startup = len(opts.StartupFiles) > 0 || opts.PickOnStart
	m.busy = m.startup
	return m
}

// Session exposes the session state.
func (m Model) Session() *session.Session { return m.sess }

// Init starts the startup preloads and the watcher subscription.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.startup {
		cmds = append(cmds, m.startupCmd(), m.spinner.Tick)
	}
	if m.opts.Changes != nil {
		cmds = append(cmds, waitForChanges(m.opts.Changes))
	}
	return tea.Batch(cmds...)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dispatchDoneMsg:
		return m.handleDispatchDone(msg)

	case startupDoneMsg:
		return m.handleStartupDone(msg)

	case sourcesChangedMsg:
		changed := m.reg.MarkStale(msg.paths)
		if len(changed) > 0 {
			m.log.Info().Strs("tables", changed).Msg("source changed on disk")
		}
		return m, waitForChanges(m.opts.Changes)

	case sourcesClosedMsg:
		return m, nil
	}

	// The browser reads directories through its own messages.
	if m.browser != nil {
		return m.updateBrowser(msg)
	}
	return m, nil
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	if m.browser != nil {
		m.browser.Resize(m.browserHeight())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.browser != nil {
		return m.updateBrowser(msg)
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp && msg.Type == tea.KeyEsc {
		m.showHelp = false
		return m, nil
	}

	for _, in := range m.keys.Inputs(msg) {
		switch m.sess.Apply(in) {
		case session.EffectQuit:
			m.quitting = true
			return m, tea.Quit
		case session.EffectSubmit:
			return m.submit()
		}
	}
	return m, nil
}

// submit runs the editor line. Blank lines change nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.sess.Editor.String()
	parsed := m.disp.Classify(text)
	if parsed.Blank {
		return m, nil
	}
	m.showHelp = false
	m.log.Debug().Str("action", parsed.Action().String()).Msg("submit")

	if parsed.Action() == commands.ActionCreateTable {
		return m.beginCreate(true, parsed.Text)
	}

	m.busy = true
	ctx, disp := m.ctx, m.disp
	run := func() tea.Msg {
		return dispatchDoneMsg{out: disp.Submit(ctx, text, nil), typed: true, text: text}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

// beginCreate starts the create-table flow through whichever dialog is
// configured.
func (m Model) beginCreate(typed bool, text string) (tea.Model, tea.Cmd) {
	if m.opts.Picker == nil {
		b := newBrowser(m.opts.StartDir, m.browserHeight(), m.theme)
		m.browser = &b
		m.browserTyped, m.browserText = typed, text
		return m, b.Init()
	}

	m.busy = true
	ctx, disp, p := m.ctx, m.disp, m.opts.Picker
	run := func() tea.Msg {
		path, err := p.PickFile(ctx, pickTitle, ingest.Extensions)
		out := disp.CreateTable(ctx, path, err)
		out.Text = text
		return dispatchDoneMsg{out: out, typed: typed, text: text}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	b, res, path, cmd := m.browser.Update(msg)
	typed, text := m.browserTyped, m.browserText

	switch res {
	case browserCancelled:
		m.browser = nil
		out := m.disp.CreateTable(m.ctx, "", picker.ErrCancelled)
		out.Text = text
		return m.handleDispatchDone(dispatchDoneMsg{out: out, typed: typed, text: text})

	case browserPicked:
		m.browser = nil
		m.busy = true
		ctx, disp := m.ctx, m.disp
		run := func() tea.Msg {
			out := disp.CreateTable(ctx, path, nil)
			out.Text = text
			return dispatchDoneMsg{out: out, typed: typed, text: text}
		}
		return m, tea.Batch(cmd, run, m.spinner.Tick)
	}

	m.browser = &b
	return m, cmd
}

func (m Model) handleDispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.out.Blank {
		return m, nil
	}
	if msg.typed {
		m.sess.Complete(msg.out.Text, msg.out.Table)
	} else {
		m.sess.Show(msg.out.Table)
	}
	return m, nil
}

func (m Model) handleStartupDone(msg startupDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.startup = false
	for _, out := range msg.outs {
		m.sess.Show(out.Table)
	}
	if m.opts.PickOnStart {
		return m.beginCreate(false, "")
	}
	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// startupCmd registers the startup files in order. Failures become
// diagnostics; they never stop the console.
func (m Model) startupCmd() tea.Cmd {
	ctx, disp, files := m.ctx, m.disp, m.opts.StartupFiles
	return func() tea.Msg {
		outs := make([]dispatch.Outcome, 0, len(files))
		for _, f := range files {
			outs = append(outs, disp.CreateTable(ctx, f, nil))
		}
		return startupDoneMsg{outs: outs}
	}
}

func waitForChanges(ch <-chan []string) tea.Cmd {
	return func() tea.Msg {
		paths, ok := <-ch
		if !ok {
			return sourcesClosedMsg{}
		}
		return sourcesChangedMsg{paths: paths}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// browserHeight is the number of entries the browser lists: the results
// panel minus its borders and the directory header.
func (m Model) browserHeight() int {
	geo := render.Measure(m.width, m.height, m.opts.ColumnWidth)
	return geo.ResultsHeight - 4
}

// Snapshot collects the state one frame shows.
func (m Model) Snapshot() render.Snapshot {
	stale := 0
	for _, e := range m.reg.Entries() {
		if e.Stale {
			stale++
		}
	}

	s := render.Snapshot{
		Table:       m.sess.Table,
		Viewport:    m.sess.Viewport,
		Text:        m.sess.Editor.Runes(),
		Cursor:      m.sess.Editor.Cursor(),
		Title:       m.reg.Title(),
		ColumnWidth: m.opts.ColumnWidth,
		Driver:      m.opts.Driver,
		Stale:       stale,
		Busy:        m.busy,
		Spinner:     m.spinner.View(),
		Help:        m.help.ShortHelpView(m.keys.ShortHelp()),
	}

	switch {
	case m.browser != nil:
		s.Overlay = m.browser.View()
		s.OverlayTitle = browserTitle
		s.Help = m.help.ShortHelpView([]key.Binding{
			m.browser.fp.KeyMap.Select, m.browser.fp.KeyMap.Back,
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		})
	case m.showHelp:
		geo := render.Measure(m.width, m.height, m.opts.ColumnWidth)
		s.Overlay = m.helpDoc.Render(geo.InnerWidth)
		s.OverlayTitle = helpTitle
	}
	return s
}

// View renders one frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return render.Frame(m.Snapshot(), m.theme, m.width, m.height)
}
