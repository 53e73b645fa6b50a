package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/workbench"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	output     string // save destination for ctrl+s
	baseURL    string
	timeout    time.Duration
	configFile string
}

// newEditCmd creates the interactive editor command.
func newEditCmd() *cobra.Command {
	opts := editOpts{}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit an automaton interactively",
		Long: `Edit opens the interactive workbench. The five draft fields are edited
in place; ctrl+d and ctrl+g submit the draft to the conversion service
for determinization and grammar extraction, and the results appear in
the editor as they arrive. Conversions fail independently and never
block editing.

With a file argument the automaton is loaded into the editor and ctrl+s
saves back to the same file.

Examples:
  machina edit
  machina edit machine.json
  machina edit --output new.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runEdit(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "file ctrl+s saves to (defaults to the input file)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "conversion service URL (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default: "+configPath()+")")

	return cmd
}

func runEdit(cmd *cobra.Command, input string, opts *editOpts) error {
	draft := automaton.Draft{}
	if input != "" {
		spec, err := automaton.ReadFile(input)
		if err != nil {
			return err
		}
		draft = automaton.DraftOf(spec)
	}

	savePath := opts.output
	if savePath == "" {
		savePath = input
	}

	client, err := converterClient(opts.configFile, opts.baseURL, opts.timeout)
	if err != nil {
		return err
	}

	wb := workbench.New(client, draft)
	defer wb.Close()

	m := newEditorModel(cmd.Context(), wb, savePath)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}

	if em, ok := final.(editorModel); ok && em.saved != "" {
		printSuccess("saved automaton")
		printFile(em.saved)
	}
	return nil
}

// =============================================================================
// editorModel - Interactive workbench editor
// =============================================================================

// pollInterval is how often the editor refreshes its snapshot while a
// conversion is in flight.
const pollInterval = 100 * time.Millisecond

// editorFields lists the draft fields in display order.
var editorFields = []automaton.Field{
	automaton.FieldAlphabet,
	automaton.FieldStates,
	automaton.FieldInitial,
	automaton.FieldFinals,
	automaton.FieldTransitions,
}

// pollMsg asks the editor to take a fresh workbench snapshot.
type pollMsg struct{}

// editorModel is the bubbletea model for the interactive editor. The
// workbench owns all automaton state; the model only holds display concerns
// and the latest snapshot.
type editorModel struct {
	ctx      context.Context
	wb       *workbench.Workbench
	state    workbench.State
	cursor   int
	savePath string
	saved    string // set once a save succeeds, shown after exit
	status   string // transient message below the form
	polling  bool
}

func newEditorModel(ctx context.Context, wb *workbench.Workbench, savePath string) editorModel {
	return editorModel{
		ctx:      ctx,
		wb:       wb,
		state:    wb.Snapshot(),
		savePath: savePath,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		m.state = m.wb.Snapshot()
		if m.state.DFAOp.Busy() || m.state.GrammarOp.Busy() {
			return m, poll()
		}
		m.polling = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "tab", "enter":
			if m.cursor < len(editorFields)-1 {
				m.cursor++
			} else if msg.String() == "enter" {
				m.cursor = 0
			}
		case "backspace":
			value := []rune(m.currentValue())
			if len(value) > 0 {
				m.editCurrent(string(value[:len(value)-1]))
			}
		case "ctrl+d":
			return m.submit(workbench.OpDFA)
		case "ctrl+g":
			return m.submit(workbench.OpGrammar)
		case "ctrl+s":
			m.save()
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.editCurrent(m.currentValue() + string(msg.Runes))
			case tea.KeySpace:
				m.editCurrent(m.currentValue() + " ")
			}
		}
	}
	return m, nil
}

func (m *editorModel) currentValue() string {
	switch editorFields[m.cursor] {
	case automaton.FieldAlphabet:
		return m.state.Draft.Alphabet
	case automaton.FieldStates:
		return m.state.Draft.States
	case automaton.FieldInitial:
		return m.state.Draft.Initial
	case automaton.FieldFinals:
		return m.state.Draft.Finals
	default:
		return m.state.Draft.Transitions
	}
}

// editCurrent routes one edit through the workbench and refreshes the
// snapshot so the form always renders applied state.
func (m *editorModel) editCurrent(value string) {
	m.status = ""
	if err := m.wb.Dispatch(workbench.EditField{Field: editorFields[m.cursor], Value: value}); err != nil {
		m.status = StyleError.Render(err.Error())
		return
	}
	m.state = m.wb.Snapshot()
}

// submit launches a conversion and starts polling for its completion.
// Compile errors surface immediately in the status line.
func (m editorModel) submit(op workbench.Op) (tea.Model, tea.Cmd) {
	if _, err := m.wb.Submit(m.ctx, op); err != nil {
		m.status = StyleError.Render(errors.UserMessage(err))
		return m, nil
	}
	m.status = ""
	m.state = m.wb.Snapshot()
	if m.polling {
		return m, nil
	}
	m.polling = true
	return m, poll()
}

// save compiles the draft and writes it to the save path.
func (m *editorModel) save() {
	if m.savePath == "" {
		m.status = StyleWarning.Render("no save path (run edit with a file argument or --output)")
		return
	}
	spec, err := m.state.Compile()
	if err != nil {
		m.status = StyleError.Render(errors.UserMessage(err))
		return
	}
	if err := automaton.WriteFile(spec, m.savePath); err != nil {
		m.status = StyleError.Render(errors.UserMessage(err))
		return
	}
	m.saved = m.savePath
	m.status = StyleSuccess.Render("saved " + m.savePath)
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Machina Workbench"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab/↑/↓ move  ctrl+d dfa  ctrl+g grammar  ctrl+s save  esc quit"))
	b.WriteString("\n\n")

	for i, field := range editorFields {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := fmt.Sprintf("%-12s", string(field))
		value := m.fieldValue(field)
		if i == m.cursor {
			b.WriteString(StyleHighlight.Render(cursor+label) + StyleValue.Render(value) + StyleHighlight.Render("█"))
		} else {
			b.WriteString(StyleDim.Render(cursor+label) + StyleValue.Render(value))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.opLine("dfa", m.state.DFAOp))
	b.WriteString("\n")
	b.WriteString(m.opLine("grammar", m.state.GrammarOp))
	b.WriteString("\n")

	if m.state.DFA != nil {
		b.WriteString("\n")
		b.WriteString(renderDFASummary(*m.state.DFA))
		b.WriteString("\n")
	}
	if m.state.Grammar != nil && !m.state.Grammar.Empty() {
		b.WriteString("\n")
		b.WriteString(renderGrammarTable(*m.state.Grammar))
		b.WriteString("\n")
	}

	return b.String()
}

func (m editorModel) fieldValue(field automaton.Field) string {
	switch field {
	case automaton.FieldAlphabet:
		return m.state.Draft.Alphabet
	case automaton.FieldStates:
		return m.state.Draft.States
	case automaton.FieldInitial:
		return m.state.Draft.Initial
	case automaton.FieldFinals:
		return m.state.Draft.Finals
	default:
		// The transition map can span lines; show it flattened.
		return strings.Join(strings.Fields(m.state.Draft.Transitions), " ")
	}
}

// opLine renders one operation's lifecycle line.
func (m editorModel) opLine(name string, op workbench.OpState) string {
	label := StyleDim.Render(fmt.Sprintf("%-8s", name))
	switch op.Phase {
	case workbench.PhaseSubmitting:
		return label + StyleWarning.Render("converting…")
	case workbench.PhaseSucceeded:
		return label + StyleSuccess.Render(iconSuccess+" done")
	case workbench.PhaseFailed:
		return label + StyleError.Render(iconError+" "+op.Error)
	default:
		return label + StyleDim.Render("idle")
	}
}

func renderDFASummary(dfa automaton.Spec) string {
	return StyleDim.Render(fmt.Sprintf("DFA: %d states, initial %s, finals %s",
		len(dfa.States), dfa.Initial, automaton.JoinList(dfa.Finals)))
}

// renderGrammarTable renders the grammar productions as a bordered table,
// preserving the order the service returned them in.
func renderGrammarTable(res grammar.Result) string {
	rows := [][]string{}
	for _, p := range res.Productions {
		rows = append(rows, []string{p.State, strings.Join(p.RHS, " | ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Nonterminal", "Productions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
