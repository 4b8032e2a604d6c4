package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IkeLewis/scsh/env"
	"github.com/IkeLewis/scsh/log"
)

const prompt = "> "

// Styles.
//
//nolint:gochecknoglobals
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func helpMessage() string {
	return `
Commands:

  help           Print this cruft
  list           List names visible from the current package
  open <struct>  Open a structure into the current package
  in <struct>    Switch to the package of a structure
  new [name]     Switch to a fresh package (anonymous without a name)
  load <file>    Load a file into the current package
  quit           Exit

Anything else is evaluated as an expression in the current package.
Press Tab to cycle completions; Up/Down navigate history.
Press Ctrl+C on an empty line or Ctrl+D to exit.
`
}

// model is the Bubble Tea model for the interactive session.
type model struct {
	ctxFunc    func() context.Context
	ec         *env.Context
	history    *History
	input      textinput.Model
	logger     log.Logger
	historyIdx int
	suggIdx    int
	quitting   bool
}

// Run starts the interactive session against the given execution context.
// History persists under cacheDir between sessions.
func Run(
	ctx context.Context,
	ec *env.Context,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if ec == nil {
		return ErrNoContext
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))

	err = history.Load()
	if err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("error", err.Error()),
		)
	}

	logger.TraceContext(ctx, "interactive session start",
		slog.String("package", ec.Current.Name),
		slog.Int("history", history.Len()),
	)

	input := textinput.New()
	input.Prompt = promptStyle.Render(prompt)
	input.Focus()

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		ec:         ec,
		history:    history,
		input:      input,
		logger:     logger,
		historyIdx: history.Len(),
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	return history.Save()
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.passthrough(msg)
	}

	switch keyMsg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if strings.TrimSpace(m.input.Value()) == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")

		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if m.historyIdx > 0 {
			m.historyIdx--
			m.input.SetValue(m.history.Get(m.historyIdx))
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyDown:
		if m.historyIdx < m.history.Len() {
			m.historyIdx++
			m.input.SetValue(m.history.Get(m.historyIdx))
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyTab:
		return m.cycleCompletion()

	default:
		m.suggIdx = 0

		return m.passthrough(msg)
	}
}

func (m model) passthrough(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// cycleCompletion replaces the word under the cursor with the next fuzzy
// completion candidate.
func (m model) cycleCompletion() (tea.Model, tea.Cmd) {
	word, start := currentWord(m.input.Value())

	matches := complete(word, candidates(m.ec))
	if len(matches) == 0 {
		return m, nil
	}

	match := matches[m.suggIdx%len(matches)].Str
	m.suggIdx++

	m.input.SetValue(m.input.Value()[:start] + match)
	m.input.CursorEnd()

	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.suggIdx = 0

	if line == "" {
		return m, nil
	}

	m.history.Append(line)
	m.historyIdx = m.history.Len()

	echo := promptStyle.Render(prompt) + inputStyle.Render(line)

	output, quit := m.execute(line)

	cmds := []tea.Cmd{tea.Println(echo)}

	if output != "" {
		cmds = append(cmds, tea.Println(output))
	}

	if quit {
		m.quitting = true

		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Sequence(cmds...)
}

// execute runs one line: a control command or an expression evaluated in the
// current environment.
//
//nolint:cyclop
func (m model) execute(line string) (output string, quit bool) {
	ctx := m.ctxFunc()
	fields := strings.Fields(line)

	switch fields[0] {
	case "quit", "exit":
		return "", true

	case "help":
		return hintStyle.Render(helpMessage()), false

	case "list":
		return hintStyle.Render(strings.Join(m.ec.Current.Env.Names(), "  ")),
			false

	case "open":
		if len(fields) < 2 {
			return errorStyle.Render(ErrMissingArg.Error()), false
		}

		return m.render(m.ec.Open(ctx, fields[1])), false

	case "in":
		if len(fields) < 2 {
			return errorStyle.Render(ErrMissingArg.Error()), false
		}

		return m.render(m.ec.SwitchPackage(ctx, fields[1])), false

	case "new":
		name, named := "", false
		if len(fields) > 1 {
			name, named = fields[1], true
		}

		pkg := m.ec.NewPackage(name, named)

		return hintStyle.Render("now in package " + pkg.Name), false

	case "load":
		if len(fields) < 2 {
			return errorStyle.Render(ErrMissingArg.Error()), false
		}

		return m.render(m.ec.LoadCurrent(ctx, fields[1])), false
	}

	result, err := env.Eval(ctx, line, m.ec.Current.Env)
	if err != nil {
		return errorStyle.Render(err.Error()), false
	}

	return resultStyle.Render(fmt.Sprintf("%v", result)), false
}

// render formats a command outcome.
func (m model) render(err error) string {
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	return hintStyle.Render("ok")
}

// View implements tea.Model.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n"
}
