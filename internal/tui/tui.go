package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trackfetch/trackfetch/internal/config"
	"github.com/trackfetch/trackfetch/internal/job"
	"github.com/trackfetch/trackfetch/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	jobIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// jobRow is the render state of one submitted job. It is fed purely by
// the scheduler's event stream.
type jobRow struct {
	id      string
	percent int
	done    bool
	success bool
	detail  string
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	sched     *job.Scheduler

	format   model.Format
	playlist bool
	showLog  bool

	rows  []jobRow
	index map[string]int
	logs  []string

	width  int
	height int
}

// NewModel creates a new TUI model on top of a running scheduler.
func NewModel(settings *config.Settings, sched *job.Scheduler) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.example.com/watch?v=..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return Model{
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		sched:     sched,
		format:    model.FormatMP3,
		playlist:  false,
		showLog:   settings.Verbose,
		index:     make(map[string]int),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// JobEventMsg carries one scheduler event into the update loop.
	JobEventMsg struct {
		Event job.Event
	}

	// StreamClosedMsg is sent when the scheduler's event stream ends.
	StreamClosedMsg struct{}
)

// waitForEvent blocks on the scheduler's event stream and hands the
// next event to Update. It re-arms itself after every event.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.sched.Events()
		if !ok {
			return StreamClosedMsg{}
		}
		return JobEventMsg{Event: ev}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 30
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if url := strings.TrimSpace(m.textInput.Value()); url != "" {
				m.submit(url)
				m.textInput.SetValue("")
			}
			return m, nil

		case "tab":
			m.format = nextFormat(m.format)
			return m, nil

		case "ctrl+p":
			m.playlist = !m.playlist
			return m, nil

		case "ctrl+l":
			m.showLog = !m.showLog
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case JobEventMsg:
		m.apply(msg.Event)
		cmds = append(cmds, m.waitForEvent())

	case StreamClosedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands a URL to the scheduler and records the new row.
// Rejections surface in the log pane instead of a row.
func (m *Model) submit(url string) {
	id, err := m.sched.Submit(url, m.format, m.playlist)
	if err != nil {
		m.pushLog(fmt.Sprintf("rejected: %v", err))
		return
	}

	m.index[id] = len(m.rows)
	m.rows = append(m.rows, jobRow{id: id})
	m.pushLog(fmt.Sprintf("queued %s as %s (%s)", url, id, m.format))
}

// apply folds one scheduler event into the matching row.
func (m *Model) apply(ev job.Event) {
	i, ok := m.index[ev.EventJobID()]
	if !ok {
		return
	}

	switch ev := ev.(type) {
	case job.ProgressEvent:
		m.rows[i].percent = ev.Percent

	case job.OutcomeEvent:
		m.rows[i].done = true
		m.rows[i].success = ev.Success
		if ev.Success {
			m.rows[i].detail = ev.Filename
			m.pushLog(fmt.Sprintf("finished %s: %s", ev.JobID, ev.Filename))
		} else {
			m.rows[i].detail = ev.ErrorMessage
			m.pushLog(fmt.Sprintf("failed %s: %s", ev.JobID, ev.ErrorMessage))
		}
	}
}

func (m *Model) pushLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > 8 {
		m.logs = m.logs[len(m.logs)-8:]
	}
}

func nextFormat(f model.Format) model.Format {
	switch f {
	case model.FormatMP3:
		return model.FormatM4A
	case model.FormatM4A:
		return model.FormatFLAC
	case model.FormatFLAC:
		return model.FormatWAV
	default:
		return model.FormatMP3
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 trackfetch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Fetch, identify and tag audio from media URLs"))
	b.WriteString("\n\n")

	b.WriteString(m.viewInput())
	b.WriteString("\n")
	b.WriteString(m.viewJobs())

	if m.showLog && len(m.logs) > 0 {
		b.WriteString("\n")
		for _, line := range m.logs {
			b.WriteString(dimStyle.Render("› " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: queue job • tab: format • ctrl+p: playlist • ctrl+l: log • esc: quit"))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter media URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[×]"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Format: %s", m.format)))
	b.WriteString("   ")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%s Allow playlists", playlistCheck)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputRoot)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewJobs() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("No jobs yet.") + "\n"
	}

	var b strings.Builder
	for _, row := range m.rows {
		b.WriteString(jobIDStyle.Render(fmt.Sprintf("%-14.14s", row.id)))
		b.WriteString(" ")

		switch {
		case row.done && row.success:
			b.WriteString(successStyle.Render("✓ " + row.detail))
		case row.done:
			b.WriteString(errorStyle.Render("✗ " + row.detail))
		default:
			b.WriteString(m.progress.ViewAs(float64(row.percent) / 100))
			b.WriteString(fmt.Sprintf(" %3d%% ", row.percent))
			b.WriteString(m.spinner.View())
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the TUI application. It returns when the user quits or
// the scheduler's event stream closes.
func Run(settings *config.Settings, sched *job.Scheduler) error {
	p := tea.NewProgram(NewModel(settings, sched), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
