package ui

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qsearch/internal/domain"
	"qsearch/internal/eventbus"
	"qsearch/internal/search"
	"qsearch/internal/ui/views"
)

type focusMode int

const (
	focusInput focusMode = iota
	focusResults
)

// Options wires a Model to its controller
type Options struct {
	Controller *search.Controller
	// Executor must be the one the controller posts to
	Executor     *ProgramExecutor
	Bus          eventbus.EventBus
	WindowSize   int
	InitialQuery string
}

// Model represents the UI state
type Model struct {
	ctrl        *search.Controller
	exec        *ProgramExecutor
	bus         eventbus.EventBus
	state       search.State // last snapshot from the controller
	unsubscribe func()

	// UI-specific state
	width         int
	height        int
	focus         focusMode
	cursor        int
	windowSize    int
	initialQuery  string
	statusMessage string
	spinning      bool
	inPagerMode   bool // tracks if we're currently in pager mode

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search questions..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	windowSize := opts.WindowSize
	if windowSize <= 0 {
		windowSize = search.DefaultWindowSize
	}

	m := &Model{
		ctrl:         opts.Controller,
		exec:         opts.Executor,
		bus:          opts.Bus,
		state:        opts.Controller.State(),
		windowSize:   windowSize,
		initialQuery: opts.InitialQuery,
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(),
	}

	m.unsubscribe = m.ctrl.Subscribe(func(s search.State) {
		if s.Key() != m.state.Key() {
			m.cursor = 0
		}
		m.state = s
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if !domain.IsBlank(m.initialQuery) {
		m.input.SetValue(m.initialQuery)
		m.input.CursorEnd()
		m.ctrl.SetQuery(m.initialQuery)
		m.ctrl.RequestSearch(true)
	}
	return m.afterUpdate(textinput.Blink)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case drainMsg:
		m.exec.Drain()
		return m, m.afterUpdate()

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Printf("ui: pager failed: %v", msg.err)
			text := fmt.Sprintf("Pager error: %v", msg.err)
			if m.bus != nil {
				// Comes back as an EventMsg
				m.bus.Publish(eventbus.ErrorEvent{Message: text, Err: msg.err})
				return m, nil
			}
			return m, m.setStatus(text)
		}
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			return m, m.setStatus(e.Message)
		}
		return m, nil
	}

	// Cursor blink and other input bookkeeping
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Starting..."
	}

	var helpView string
	if m.focus == focusInput {
		helpView = m.help.View(inputHelp{m.keys})
	} else {
		helpView = m.help.View(resultsHelp{m.keys})
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Search:        m.state,
		Input:         m.input.View(),
		InputFocused:  m.focus == focusInput,
		Cursor:        m.cursor,
		WindowSize:    m.windowSize,
		Spinner:       m.spinner.View(),
		StatusMessage: m.statusMessage,
		Help:          helpView,
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, m.quit()
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.ctrl.RequestSearch(true)
		return m, m.afterUpdate()

	case key.Matches(msg, m.keys.ToResults):
		m.setFocus(focusResults)
		return m, nil

	case key.Matches(msg, m.keys.ClearQuery):
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.ctrl.SetQuery("")
			m.ctrl.RequestSearch(true)
		}
		return m, m.afterUpdate()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.ctrl.SetQuery(value)
	}
	return m, m.afterUpdate(cmd)
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.state

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(s.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Prev):
		if s.HasPrev() {
			m.ctrl.SetPage(s.Page - 1)
		}

	case key.Matches(msg, m.keys.Next):
		if s.HasNext() {
			m.ctrl.SetPage(s.Page + 1)
		}

	case key.Matches(msg, m.keys.First):
		if s.HasPrev() {
			m.ctrl.SetPage(1)
		}

	case key.Matches(msg, m.keys.Last):
		if s.TotalPages > 0 && s.Page != s.TotalPages {
			m.ctrl.SetPage(s.TotalPages)
		}

	case key.Matches(msg, m.keys.GoToPage):
		n := int(msg.String()[0] - '0')
		pages := slices.Collect(s.PageWindow(m.windowSize))
		if n <= len(pages) && pages[n-1] != s.Page {
			m.ctrl.SetPage(pages[n-1])
		}

	case key.Matches(msg, m.keys.Open):
		if !s.Loading && m.cursor < len(s.Items) {
			content := views.RenderDetail(s.Items[m.cursor], s.Key(), m.cursor+1)
			return m, m.openPager(content)
		}

	case key.Matches(msg, m.keys.Retry):
		m.ctrl.RequestSearch(true)

	case key.Matches(msg, m.keys.ToInput):
		m.setFocus(focusInput)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		return m, m.openPager(m.helpRenderer.RenderHelpContent(m.keys))

	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	}

	return m, m.afterUpdate()
}

func (m *Model) setFocus(f focusMode) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// afterUpdate keeps the cursor in range and starts the spinner when a
// search begins
func (m *Model) afterUpdate(cmds ...tea.Cmd) tea.Cmd {
	if n := len(m.state.Items); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if m.state.Loading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// openPager returns a command that shows content in the ov pager
func (m *Model) openPager(content string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil {
			return pagerMsg{err: fmt.Errorf("program not set")}
		}

		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.ctrl.Close()
	return tea.Quit
}
