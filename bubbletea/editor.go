// Package bubbletea provides a terminal editor with live highlighting using the
// Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/diag"
	"github.com/fwojciec/kisspad/fs"
	"github.com/fwojciec/kisspad/highlight"
	klipgloss "github.com/fwojciec/kisspad/lipgloss"
	"github.com/fwojciec/kisspad/log"
)

// Compile-time interface verification.
var _ highlight.Deferrer = (*cmdDeferrer)(nil)

// cmdDeferrer turns deferred work into commands. The Bubble Tea runtime
// delivers each as a message on a later Update, on the UI goroutine.
type cmdDeferrer struct {
	queued []func()
}

func (d *cmdDeferrer) Defer(fn func()) {
	d.queued = append(d.queued, fn)
}

// cmd returns a command per queued task and clears the queue.
func (d *cmdDeferrer) cmd() tea.Cmd {
	if len(d.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(d.queued))
	for _, fn := range d.queued {
		cmds = append(cmds, func() tea.Msg { return deferredMsg{run: fn} })
	}
	d.queued = nil
	return tea.Batch(cmds...)
}

// errorLines holds the error line set shared by the model and its session.
type errorLines struct {
	set kisspad.ErrorLineSet
}

type (
	deferredMsg struct{ run func() }

	// DiagnosticsMsg replaces the error line set. Sending it requests a pass.
	DiagnosticsMsg struct {
		Lines kisspad.ErrorLineSet
		Err   error
	}

	filesChangedMsg struct{ paths []string }

	reloadedMsg struct {
		doc kisspad.Document
		err error
	}

	savedMsg struct {
		doc kisspad.Document
		err error
	}

	copiedMsg struct{ err error }
)

// Model is the Bubble Tea model of the editor.
type Model struct {
	buffer    *Buffer
	engine    *highlight.Engine
	session   *highlight.Session
	surface   *klipgloss.Surface
	deferrer  *cmdDeferrer
	errs      *errorLines
	clipboard kisspad.Clipboard

	diagnostics string
	watch       <-chan []string

	keymap   KeyMap
	palette  kisspad.Palette
	renderer *lipgloss.Renderer
	viewport viewport.Model
	prompt   textinput.Model

	prompting bool
	status    string
	width     int
	height    int
	ready     bool
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer    *lipgloss.Renderer
	theme       kisspad.Theme
	clipboard   kisspad.Clipboard
	diagnostics string
	errs        kisspad.ErrorLineSet
	watch       <-chan []string
	tabWidth    int
	engineOpts  []highlight.Option
	keymap      *KeyMap
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t kisspad.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithClipboard sets the clipboard used by the copy binding.
func WithClipboard(c kisspad.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithDiagnostics sets a diagnostics file whose error lines are overlaid.
func WithDiagnostics(path string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.diagnostics = path
	}
}

// WithErrorLines sets the initial error line set.
func WithErrorLines(s kisspad.ErrorLineSet) ModelOption {
	return func(cfg *modelConfig) {
		cfg.errs = s
	}
}

// WithWatch sets a channel of changed file paths, such as one returned by
// the fsnotify watcher. Changes to the diagnostics file reload error lines;
// changes to the open file reload it when it has no unsaved edits.
func WithWatch(ch <-chan []string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.watch = ch
	}
}

// WithTabWidth sets the tab stop interval.
func WithTabWidth(n int) ModelOption {
	return func(cfg *modelConfig) {
		cfg.tabWidth = n
	}
}

// WithEngineOptions passes options to the highlight engine.
func WithEngineOptions(opts ...highlight.Option) ModelOption {
	return func(cfg *modelConfig) {
		cfg.engineOpts = append(cfg.engineOpts, opts...)
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) ModelOption {
	return func(cfg *modelConfig) {
		cfg.keymap = &km
	}
}

// NewModel creates an editor Model for doc.
func NewModel(doc kisspad.Document, opts ...ModelOption) (Model, error) {
	cfg := &modelConfig{tabWidth: klipgloss.DefaultTabWidth}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.theme == nil {
		cfg.theme = klipgloss.DefaultTheme()
	}
	palette := cfg.theme.Palette()

	buffer := NewBuffer(doc)
	errs := &errorLines{set: cfg.errs}
	surface := klipgloss.NewSurface(
		klipgloss.WithRenderer(cfg.renderer),
		klipgloss.WithTabWidth(cfg.tabWidth),
	)
	deferrer := &cmdDeferrer{}
	engine := highlight.NewEngine(palette, cfg.engineOpts...)

	session, err := highlight.NewSession(highlight.SessionConfig{
		Engine:     engine,
		Deferrer:   deferrer,
		Document:   buffer.Document,
		ErrorLines: func() kisspad.ErrorLineSet { return errs.set },
		Surface:    surface,
	})
	if err != nil {
		return Model{}, err
	}

	keymap := DefaultKeyMap()
	if cfg.keymap != nil {
		keymap = *cfg.keymap
	}

	prompt := textinput.New()
	prompt.Prompt = "Save as: "

	return Model{
		buffer:      buffer,
		engine:      engine,
		session:     session,
		surface:     surface,
		deferrer:    deferrer,
		errs:        errs,
		clipboard:   cfg.clipboard,
		diagnostics: cfg.diagnostics,
		watch:       cfg.watch,
		keymap:      keymap,
		palette:     palette,
		renderer:    cfg.renderer,
		prompt:      prompt,
	}, nil
}

// Init implements tea.Model. Loading a document requests a pass.
func (m Model) Init() tea.Cmd {
	m.session.Changed()
	return tea.Batch(m.deferrer.cmd(), m.loadDiagnostics(), m.waitForChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case deferredMsg:
		msg.run()

	case DiagnosticsMsg:
		if msg.Err != nil {
			m.status = "diagnostics: " + msg.Err.Error()
			log.ErrorErr(log.CatUI, "loading diagnostics failed", msg.Err)
			break
		}
		m.errs.set = msg.Lines
		m.session.Changed()

	case filesChangedMsg:
		cmds = append(cmds, m.filesChanged(msg.paths)...)
		cmds = append(cmds, m.waitForChange())

	case reloadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			break
		}
		if !m.buffer.Modified() {
			m.buffer.Reset(msg.doc)
			m.session.Changed()
			m.status = "reloaded"
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			log.ErrorErr(log.CatUI, "save failed", msg.err, "path", msg.doc.Filename)
			break
		}
		if m.buffer.Text() == msg.doc.Text {
			m.buffer.MarkSaved()
		}
		m.status = "saved " + msg.doc.Filename

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied to clipboard"
		}

	case tea.WindowSizeMsg:
		const chromeHeight = 2 // Title bar and status bar
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-chromeHeight, 1))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-chromeHeight, 1)
		}
		m.prompt.Width = max(msg.Width-len(m.prompt.Prompt)-1, 1)

	case tea.KeyMsg:
		if m.prompting {
			cmds = append(cmds, m.updatePrompt(msg))
			break
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.deferrer.cmd())
	m.refresh()
	return m, tea.Batch(cmds...)
}

// handleKey applies an editing or command key. Every edit notifies the
// session, which schedules at most one pending pass.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	edited := false
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return nil, true
	case key.Matches(msg, m.keymap.Save):
		return m.save(), false
	case key.Matches(msg, m.keymap.Copy):
		return m.copyAll(), false
	case key.Matches(msg, m.keymap.Reload):
		return m.loadDiagnostics(), false
	case key.Matches(msg, m.keymap.Up):
		m.buffer.Up()
	case key.Matches(msg, m.keymap.Down):
		m.buffer.Down()
	case key.Matches(msg, m.keymap.Left):
		m.buffer.Left()
	case key.Matches(msg, m.keymap.Right):
		m.buffer.Right()
	case key.Matches(msg, m.keymap.Home):
		m.buffer.Home()
	case key.Matches(msg, m.keymap.End):
		m.buffer.End()
	case key.Matches(msg, m.keymap.PageUp):
		for i := 0; i < max(m.viewport.Height, 1); i++ {
			m.buffer.Up()
		}
	case key.Matches(msg, m.keymap.PageDown):
		for i := 0; i < max(m.viewport.Height, 1); i++ {
			m.buffer.Down()
		}
	case key.Matches(msg, m.keymap.Backspace):
		edited = m.buffer.Backspace()
	case key.Matches(msg, m.keymap.Delete):
		edited = m.buffer.Delete()
	case key.Matches(msg, m.keymap.Newline):
		m.buffer.Insert("\n")
		edited = true
	case key.Matches(msg, m.keymap.Tab):
		m.buffer.Insert("\t")
		edited = true
	case msg.Type == tea.KeyRunes:
		m.buffer.Insert(string(msg.Runes))
		edited = len(msg.Runes) > 0
	case msg.Type == tea.KeySpace:
		m.buffer.Insert(" ")
		edited = true
	}
	if edited {
		m.status = ""
		m.session.Changed()
	}
	return nil, false
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompting = false
		m.prompt.Blur()
		m.status = "save cancelled"
		return nil
	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		path := strings.TrimSpace(m.prompt.Value())
		if path == "" {
			m.status = "save cancelled"
			return nil
		}
		// Binding a name can change the language of the next pass.
		m.buffer.Bind(path)
		m.session.Changed()
		return m.save()
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// save writes the buffer to its file, prompting for a name when unbound.
func (m *Model) save() tea.Cmd {
	if m.buffer.Filename() == "" {
		m.prompting = true
		m.prompt.SetValue("")
		return m.prompt.Focus()
	}
	doc := m.buffer.Document()
	return func() tea.Msg {
		return savedMsg{doc: doc, err: fs.Save(doc)}
	}
}

func (m *Model) copyAll() tea.Cmd {
	if m.clipboard == nil {
		m.status = "no clipboard available"
		return nil
	}
	cb, text := m.clipboard, m.buffer.Text()
	return func() tea.Msg {
		return copiedMsg{err: cb.Copy(text)}
	}
}

func (m Model) loadDiagnostics() tea.Cmd {
	if m.diagnostics == "" {
		return nil
	}
	path, file := m.diagnostics, m.buffer.Filename()
	return func() tea.Msg {
		lines, err := diag.Load(path, file)
		return DiagnosticsMsg{Lines: lines, Err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	return func() tea.Msg {
		paths, ok := <-ch
		if !ok {
			return nil
		}
		return filesChangedMsg{paths: paths}
	}
}

func (m *Model) filesChanged(paths []string) []tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range paths {
		switch {
		case m.diagnostics != "" && samePath(p, m.diagnostics):
			cmds = append(cmds, m.loadDiagnostics())
		case m.buffer.Filename() != "" && samePath(p, m.buffer.Filename()):
			if m.buffer.Modified() {
				m.status = "file changed on disk; keeping unsaved edits"
				continue
			}
			name := m.buffer.Filename()
			cmds = append(cmds, func() tea.Msg {
				doc, err := fs.Load(name)
				return reloadedMsg{doc: doc, err: err}
			})
		}
	}
	return cmds
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// refresh re-renders the buffer into the viewport and keeps the cursor line
// visible.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	lines := m.surface.Render(m.buffer.Text(), m.buffer.Cursor())
	width := digitWidth(len(lines))
	gutter := m.newStyle().Foreground(lipgloss.Color(m.palette.Comment))
	errGutter := gutter.Background(lipgloss.Color(m.errorBackground()))

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		style := gutter
		if m.errs.set.Contains(i + 1) {
			style = errGutter
		}
		sb.WriteString(style.Render(fmt.Sprintf("%*d ", width, i+1)))
		sb.WriteString(line)
	}
	m.viewport.SetContent(sb.String())

	row, _ := m.buffer.Position()
	row--
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func (m Model) errorBackground() kisspad.ColorID {
	return m.session.Background()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.titleView(), m.viewport.View(), m.statusBarView())
}

func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (m Model) titleView() string {
	style := m.newStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.palette.Default)).
		Width(m.width)
	return style.Render(m.Title())
}

// statusBarView renders cursor position, language and the last message.
func (m Model) statusBarView() string {
	if m.prompting {
		return m.prompt.View()
	}

	barStyle := m.newStyle().Foreground(lipgloss.Color(m.palette.Default))
	dimStyle := m.newStyle().Foreground(lipgloss.Color(m.palette.Comment))
	sep := dimStyle.Render(" │ ")

	line, col := m.buffer.Position()
	content := barStyle.Render(fmt.Sprintf("Ln %d, Col %d", line, col)) + sep +
		barStyle.Render(m.Language().String())
	if n := m.errs.set.Len(); n > 0 {
		content += sep + barStyle.Render(fmt.Sprintf("error lines: %d", n))
	}
	if m.status != "" {
		content += sep + barStyle.Render(m.status)
	} else {
		content += sep + dimStyle.Render("^s:save  ^y:copy  ^r:diagnostics  ^q:quit")
	}
	return content
}

// Title returns the window title: file name or Untitled, with " *" when
// there are unsaved edits.
func (m Model) Title() string {
	return m.buffer.Title()
}

// Language returns the language of the last applied pass, or the current
// classification before the first pass.
func (m Model) Language() kisspad.Language {
	if m.session.Passes() > 0 {
		return m.session.Last().Language
	}
	return m.engine.Classify(m.buffer.Document())
}

// Text returns the buffer text.
func (m Model) Text() string {
	return m.buffer.Text()
}

// Passes returns the number of highlight passes applied so far.
func (m Model) Passes() int {
	return m.session.Passes()
}

// PassState returns the highlight scheduler state.
func (m Model) PassState() highlight.State {
	return m.session.State()
}

// Spans returns the spans currently applied to the view.
func (m Model) Spans() []kisspad.StyleSpan {
	return m.surface.Spans()
}

// digitWidth returns the number of decimal digits in n.
func digitWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}

// Editor runs the editor as a full-screen program.
type Editor struct {
	opts []ModelOption
}

// NewEditor creates an Editor whose models are built with opts.
func NewEditor(opts ...ModelOption) *Editor {
	return &Editor{opts: opts}
}

// Edit opens doc and blocks until the user quits.
func (e *Editor) Edit(ctx context.Context, doc kisspad.Document) error {
	m, err := NewModel(doc, e.opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
