package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// SelectStep stores the value of the highlighted choice under envKey.
type SelectStep struct {
	title   string
	envKey  string
	choices []choice
	cursor  int
}

func NewSelectStep(title, envKey string, choices ...choice) *SelectStep {
	return &SelectStep{title: title, envKey: envKey, choices: choices}
}

func (s *SelectStep) Init() tea.Cmd {
	return nil
}

func (s *SelectStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		state.EnvVars[s.envKey] = s.choices[s.cursor].value
		return nil, nil
	}
	return s, nil
}

func (s *SelectStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + ":\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+c.label) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+c.label) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

type inputOption func(*InputStep)

func secret() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

// optional lets enter accept an empty value, which leaves the key unset.
func optional() inputOption {
	return func(s *InputStep) { s.optional = true }
}

func validated(fn func(string) error) inputOption {
	return func(s *InputStep) { s.validate = fn }
}

// InputStep reads one free-text value into envKey.
type InputStep struct {
	title    string
	envKey   string
	optional bool
	validate func(string) error
	input    textinput.Model
	err      error
}

func NewInputStep(title, envKey, placeholder string, opts ...inputOption) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder

	s := &InputStep{title: title, envKey: envKey, input: ti}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.optional {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if val != "" && s.validate != nil {
			if err := s.validate(val); err != nil {
				s.err = err
				return s, nil
			}
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.err = nil
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := "(press enter to confirm)"
	if s.optional {
		hint = "(optional, press enter to skip)"
	}
	view := fmt.Sprintf("%s:\n\n%s\n\n%s\n", s.title, s.input.View(), hint)
	if s.err != nil {
		view += "\n" + errorStyle.Render(s.err.Error()) + "\n"
	}
	return view
}

// SaveStep writes the collected values to the runtime .env file.
type SaveStep struct {
	err   error
	saved bool
}

func NewSaveStep() *SaveStep {
	return &SaveStep{}
}

func (s *SaveStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}
	if err := WriteEnv(state.EnvPath, state.EnvVars, state.Overwrite); err != nil {
		s.err = err
		return s, nil
	}
	s.saved = true
	return nil, nil
}

func (s *SaveStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}
