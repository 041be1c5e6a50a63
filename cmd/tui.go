package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/parser"
	"github.com/suderio/bloodline/internal/session"
)

var (
	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

// traitCommands take a domain and then a trait name.
var traitCommands = map[string]bool{"set": true, "buy": true, "preview": true}

var domainWords = []string{"attr", "abil", "disc", "back", "virt", "other", "humanity", "willpower"}

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// complete proposes full input lines extending val: command keywords first,
// then domains after set/buy/preview, then the domain's trait names.
func complete(e *engine.Engine, c *engine.Character, val string) []string {
	if val == "" {
		return nil
	}
	words := strings.Fields(val)
	trailing := strings.HasSuffix(val, " ")
	prefix := ""
	if !trailing {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}
	base := strings.TrimSuffix(val, prefix)

	var candidates []string
	switch {
	case len(words) == 0:
		candidates = append(parser.Keywords(), "sheet", "exit")
	case len(words) == 1 && traitCommands[strings.ToLower(words[0])]:
		candidates = domainWords
	case len(words) >= 2 && traitCommands[strings.ToLower(words[0])]:
		d, ok := engine.ParseDomain(words[1])
		if !ok {
			return nil
		}
		typed := strings.Join(append(words[2:], prefix), " ")
		base = words[0] + " " + words[1] + " "
		var out []string
		for _, name := range e.TraitNames(c, d) {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(strings.TrimSpace(typed))) && !strings.EqualFold(name, strings.TrimSpace(typed)) {
				out = append(out, base+quoteIfSpaced(name)+" ")
			}
		}
		return out
	}

	var out []string
	for _, cand := range candidates {
		if strings.HasPrefix(strings.ToLower(cand), strings.ToLower(prefix)) && !strings.EqualFold(cand, prefix) {
			out = append(out, base+cand+" ")
		}
	}
	return out
}

func quoteIfSpaced(name string) string {
	if strings.Contains(name, " ") {
		return `"` + name + `"`
	}
	return name
}

type editorModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
}

func newEditorModel(app *session.Session) editorModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., set attr Strength 3)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	welcome := fmt.Sprintf("Editing %s. Type 'help' for commands, 'sheet' for the full sheet, 'exit' to quit.", app.Character().Concept.Name)
	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return editorModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
	}
}

func (m *editorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *editorModel) updateSuggestions() {
	var items []list.Item
	for _, s := range complete(m.app.Engine(), m.app.Character(), m.textInput.Value()) {
		items = append(items, suggestion(s))
	}
	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		m.suggestions.SetHeight(min(max(len(items), 4), 10))
		m.suggestions.ResetSelected()
	}
}

// run executes one line and appends the outcome to the log.
func (m *editorModel) run(val string) {
	m.logContent += fmt.Sprintf("\n\n> %s\n", val)
	if strings.EqualFold(val, "sheet") {
		m.logContent += renderSheet(m.app.Engine(), m.app.Character())
		return
	}
	lines, err := m.app.Execute(val)
	if err != nil {
		m.logContent += errorStyle.Render(fmt.Sprintf("Error: %v", err))
		return
	}
	m.logContent += strings.Join(lines, "\n")
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.history) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.history[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.history[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}
			if val != "" {
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.run(val)
				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}
	overhead := lipgloss.Height(titleStyle.Render("Dummy")) +
		lipgloss.Height(m.renderState()) +
		1 + listAreaHeight +
		lipgloss.Height(infoStyle.Render("Dummy")) + 6
	m.viewport.Height = max(m.height-overhead, 4)

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *editorModel) renderState() string {
	e, c := m.app.Engine(), m.app.Character()
	p := m.app.Progress()

	mode := c.Mode().String()
	if c.IsPlayMode {
		mode += ", in play"
	}
	next := "ready for play"
	if !p.Ready && p.NextIncomplete > 0 {
		next = engine.PhaseName(p.NextIncomplete) + " incomplete"
		if ph := p.Phases[p.NextIncomplete-1]; len(ph.Unmet) > 0 {
			next += ": " + ph.Unmet[0]
		}
	}
	b := e.FreebieBreakdown(c)
	lines := []string{
		fmt.Sprintf("Phase %d (%s), %s mode, %s", c.CurrentPhase, engine.PhaseName(c.CurrentPhase), mode, next),
		fmt.Sprintf("Freebies %d left  XP %d  Blood %d/%d  Willpower %d/%d  Health %s",
			b.Remaining(), c.XPBalance(), c.Status.BloodPool, e.BloodLimits(c).MaxBlood,
			c.Status.TempWillpower, c.Status.Willpower, engine.HealthLevelName(c)),
	}
	return stateBoxStyle.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (m *editorModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	c := m.app.Character()
	title := titleStyle.Render(fmt.Sprintf(" bloodline | %s | %s ", c.Concept.Name, orDash(c.Concept.Clan)))
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	inputArea := m.textInput.View()
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", inputArea, autocompleteStyle.Render(m.suggestions.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderState(),
		logBox,
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)
}

// RunTUI opens the interactive editor over a session.
func RunTUI(app *session.Session) error {
	m := newEditorModel(app)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
