package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vox.town/config"
	"vox.town/session"
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long:  `This command opens a terminal chat with the assistant. Input is text only; replies are not synthesized.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runChat(); err != nil {
			log.Fatal("chat", "error", err)
		}
	},
}

func runChat() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pipeline, err := session.BuildPipeline(
		context.Background(), cfg, log.Default(),
	)
	if err != nil {
		return err
	}
	// The terminal cannot play audio; skip the synthesis stage entirely.
	pipeline.Synthesizer = nil

	p := tea.NewProgram(
		initialModel(pipeline),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type replyMsg struct {
	err error
}

type model struct {
	viewport viewport.Model
	input    textinput.Model
	pipeline *session.Pipeline
	session  *session.Session
	ready    bool
	busy     bool
	warning  string
}

func initialModel(pipeline *session.Pipeline) model {
	input := textinput.New()
	input.Placeholder = "Ask something..."
	input.Focus()

	return model{
		input:    input,
		pipeline: pipeline,
		session:  session.New(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) submit(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.pipeline.SubmitText(context.Background(), m.session, text)
		return replyMsg{err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l":
			m.session.Clear()
			m.warning = ""
			m.viewport.SetContent(m.contentView())
		case "enter":
			if m.busy {
				break
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.warning = "Please enter a question!"
				break
			}
			m.warning = ""
			m.busy = true
			m.input.Reset()
			cmds = append(cmds, m.submit(text))
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		verticalMarginHeight := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMarginHeight)
			m.viewport.YPosition = headerHeight
			m.viewport.SetContent(m.contentView())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMarginHeight
		}

	case replyMsg:
		m.busy = false
		if msg.err != nil && !errors.Is(msg.err, session.ErrEmptyInput) {
			m.warning = msg.err.Error()
		}
		m.viewport.SetContent(m.contentView())
		m.viewport.GotoBottom()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) contentView() string {
	var sb strings.Builder
	for _, turn := range m.session.Turns() {
		switch turn.Role {
		case session.RoleUser:
			sb.WriteString(userStyle.Render("You: "))
		case session.RoleAssistant:
			sb.WriteString(assistantStyle.Render("Assistant: "))
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (m model) headerView() string {
	return dimStyle.Render("vox chat - enter to send, ctrl+l to clear, esc to quit") + "\n"
}

func (m model) footerView() string {
	status := ""
	if m.busy {
		status = dimStyle.Render("thinking...")
	}
	if m.warning != "" {
		status = warnStyle.Render(m.warning)
	}
	return fmt.Sprintf("\n%s\n%s", m.input.View(), status)
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf(
		"%s%s%s",
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}
