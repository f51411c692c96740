package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/events"
)

const maxLogLines = 200

// stateMsg carries a fresh presentation snapshot from the booth.
type stateMsg struct {
	state booth.UIState
}

// eventMsg carries a booth lifecycle event for the log panel.
type eventMsg struct {
	event events.Event
}

// conversationDoneMsg is sent when a start, end, or restart call returns.
type conversationDoneMsg struct {
	action string
	err    error
}

// Model is the operator console model.
type Model struct {
	booth *booth.Booth

	state    booth.UIState
	spinner  spinner.Model
	log      viewport.Model
	logLines []string

	starting bool
	lastErr  error

	width  int
	height int
	ready  bool
}

// NewModel builds the console around an already configured booth.
func NewModel(b *booth.Booth) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	return Model{
		booth:   b,
		state:   b.UI().Snapshot(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if capture := m.booth.PhoneCapture().View(); capture != nil {
			return m.updateCapture(msg, capture.Value)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "s":
			if !m.starting && !m.booth.SessionActive() {
				m.starting = true
				m.lastErr = nil
				return m, m.conversationCmd("start", func(ctx context.Context) error {
					return m.booth.StartConversation(ctx)
				})
			}

		case "e":
			if m.booth.SessionActive() {
				return m, m.conversationCmd("end", m.booth.EndConversation)
			}

		case "r":
			m.starting = true
			m.lastErr = nil
			return m, m.conversationCmd("restart", func(ctx context.Context) error {
				return m.booth.Restart(ctx)
			})

		case "v":
			m.booth.VideoEnded()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.log = viewport.New(msg.Width-4, logHeight(msg.Height))
		m.log.SetContent(strings.Join(m.logLines, "\n"))
		m.log.GotoBottom()

	case stateMsg:
		m.state = msg.state

	case eventMsg:
		line := fmt.Sprintf("%s  %s", msg.event.Timestamp().Format("15:04:05"), msg.event.Kind())
		m.logLines = append(m.logLines, line)
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		if m.ready {
			m.log.SetContent(strings.Join(m.logLines, "\n"))
			m.log.GotoBottom()
		}

	case conversationDoneMsg:
		m.starting = false
		m.lastErr = msg.err
		line := time.Now().Format("15:04:05") + "  " + msg.action
		if msg.err != nil {
			line += ": " + msg.err.Error()
		}
		m.logLines = append(m.logLines, line)
		if m.ready {
			m.log.SetContent(strings.Join(m.logLines, "\n"))
			m.log.GotoBottom()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateCapture routes keys into the phone number prompt while it is open.
func (m Model) updateCapture(msg tea.KeyMsg, value string) (tea.Model, tea.Cmd) {
	capture := m.booth.PhoneCapture()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		capture.Submit()
	case "esc":
		capture.Cancel()
	case "backspace":
		if len(value) > 0 {
			capture.SetValue(value[:len(value)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			capture.SetValue(value + string(msg.Runes))
		}
	}
	return m, nil
}

func (m Model) conversationCmd(action string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return conversationDoneMsg{action: action, err: run(ctx)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	config := m.booth.Config()
	b.WriteString(titleStyle.Render(config.Name))
	b.WriteString(dimStyle.Render("  (" + config.ID + ")"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.videoPanel())
	b.WriteString("\n")

	if m.state.Message != "" {
		b.WriteString(bannerStyle.Width(m.width - 4).Render(m.state.Message))
		b.WriteString("\n")
	}

	if rec := m.state.Recommendation; rec != nil {
		card := fmt.Sprintf("%s: %s", rec.Label, rec.ID)
		if rec.Item.Name != "" {
			card = fmt.Sprintf("%s: %s", rec.Label, rec.Item.Name)
		}
		b.WriteString(panelStyle.Render(card))
		b.WriteString("\n")
	}

	for _, notice := range m.state.Notices {
		b.WriteString(noticeStyle.Render(wordwrap.String("! "+notice.Text, m.width-4)))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(wordwrap.String(m.lastErr.Error(), m.width-4)))
		b.WriteString("\n")
	}

	if capture := m.booth.PhoneCapture().View(); capture != nil {
		b.WriteString(m.capturePanel(capture))
		b.WriteString("\n")
	}

	b.WriteString(panelStyle.Width(m.width - 4).Render(m.log.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s: start • e: end • r: restart • v: video ended • q: quit"))

	return b.String()
}

func (m Model) statusLine() string {
	var parts []string

	switch {
	case m.starting:
		parts = append(parts, m.spinner.View()+" connecting")
	case m.state.SessionActive:
		parts = append(parts, activeStyle.Render("LIVE"))
	default:
		parts = append(parts, dimStyle.Render("idle"))
	}

	loaded, total := m.booth.Preload().Progress()
	if total > 0 && loaded < total {
		parts = append(parts, fmt.Sprintf("preload %d/%d", loaded, total))
	}

	if m.state.ReportStatus != "" {
		parts = append(parts, "report: "+string(m.state.ReportStatus))
	}

	if m.state.Screen != "" {
		parts = append(parts, "screen: "+m.state.Screen)
	}

	return statusKeyStyle.Render(" BOOTH ") + statusValueStyle.Render(strings.Join(parts, " • "))
}

func (m Model) videoPanel() string {
	role := string(m.state.VideoRole)
	asset := m.state.VideoAssetURL
	if !m.state.SessionActive && asset == "" {
		asset = m.booth.PreviewAsset()
		role = "preview"
	}

	bar := volumeBar(m.state.Volume)
	content := fmt.Sprintf("%s\n%s\nvol %s", activeStyle.Render(role), dimStyle.Render(asset), bar)
	return panelStyle.Width(m.width - 4).Render(content)
}

func (m Model) capturePanel(view *booth.PhoneCaptureView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(wordwrap.String(view.Description, m.width-12)))
	b.WriteString("\n\n")

	value := view.Value
	if value == "" {
		value = dimStyle.Render(view.Placeholder)
	}
	b.WriteString("> " + value)
	b.WriteString("\n")

	if view.Error != "" {
		b.WriteString(errorStyle.Render(view.Error))
		b.WriteString("\n")
	}
	if view.Submitting {
		b.WriteString(m.spinner.View() + " sending")
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: confirm • esc: cancel"))

	return captureStyle.Render(b.String())
}

func volumeBar(level float64) string {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(level * 20)
	return activeStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", 20-filled))
}

func logHeight(total int) int {
	h := total - 18
	if h < 4 {
		h = 4
	}
	return h
}

// Run wires the booth's state feed into a bubbletea program and blocks until
// the operator quits.
func Run(b *booth.Booth, feed <-chan events.Event) error {
	p := tea.NewProgram(NewModel(b), tea.WithAltScreen())

	unsubscribe := b.UI().Subscribe(func(state booth.UIState) {
		p.Send(stateMsg{state: state})
	})
	defer unsubscribe()

	go func() {
		for event := range feed {
			p.Send(eventMsg{event: event})
		}
	}()

	_, err := p.Run()
	return err
}
