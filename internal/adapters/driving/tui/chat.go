// Package tui provides the interactive chat interface built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)

	evidenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// message is one rendered exchange line.
type message struct {
	fromUser bool
	text     string
	reply    domain.Reply
}

// replyMsg carries the resolved reply back into the update loop.
type replyMsg struct {
	reply domain.Reply
}

// Chat is the interactive chat model.
type Chat struct {
	query    driving.QueryService
	ctx      context.Context
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	messages []message
	waiting  bool
	ready    bool
	width    int
	height   int
}

// NewChat creates the chat model.
func NewChat(query driving.QueryService) *Chat {
	ti := textinput.New()
	ti.Placeholder = "Escribe tu pregunta..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Chat{
		query:   query,
		ctx:     context.Background(),
		input:   ti,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for query resolution.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init initialises the model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.viewport = viewport.New(msg.Width, msg.Height-4)
		c.viewport.SetContent(c.renderMessages())
		c.ready = true
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			return c, c.submit()
		case tea.KeyRunes:
			if string(msg.Runes) == "q" && c.input.Value() == "" {
				return c, tea.Quit
			}
		}

	case replyMsg:
		c.waiting = false
		c.messages = append(c.messages, message{text: msg.reply.Text, reply: msg.reply})
		c.viewport.SetContent(c.renderMessages())
		c.viewport.GotoBottom()
		return c, nil

	case spinner.TickMsg:
		if c.waiting {
			var cmd tea.Cmd
			c.spinner, cmd = c.spinner.Update(msg)
			return c, cmd
		}
		return c, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// submit sends the current input to the router.
func (c *Chat) submit() tea.Cmd {
	text := strings.TrimSpace(c.input.Value())
	if text == "" || c.waiting {
		return nil
	}

	c.messages = append(c.messages, message{fromUser: true, text: text})
	c.input.Reset()
	c.waiting = true
	c.viewport.SetContent(c.renderMessages())
	c.viewport.GotoBottom()

	ask := func() tea.Msg {
		return replyMsg{reply: c.query.Ask(c.ctx, text)}
	}
	return tea.Batch(c.spinner.Tick, ask)
}

// renderMessages renders the full conversation transcript.
func (c *Chat) renderMessages() string {
	var b strings.Builder
	for _, m := range c.messages {
		if m.fromUser {
			b.WriteString(userStyle.Render("Tú: ") + m.text + "\n")
			continue
		}

		b.WriteString(botStyle.Render("Preceptor: ") + m.text + "\n")
		b.WriteString(metaStyle.Render(formatMeta(m.reply)) + "\n")
		for i, ev := range m.reply.Evidence {
			b.WriteString(evidenceStyle.Render(fmt.Sprintf("[%d] %s", i+1, ev.Preview)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatMeta renders the confidence line under a reply.
func formatMeta(reply domain.Reply) string {
	source := "intents"
	if reply.UsedRetrieval {
		source = "materiales"
	}
	return fmt.Sprintf("confianza %.2f · %s", reply.Confidence, source)
}

// View renders the chat.
func (c *Chat) View() string {
	if !c.ready {
		return "Cargando..."
	}

	status := helpStyle.Render("Enter enviar · Esc salir")
	if c.waiting {
		status = c.spinner.View() + " Pensando..."
	}

	return fmt.Sprintf("%s\n%s\n%s", c.viewport.View(), c.input.View(), status)
}
