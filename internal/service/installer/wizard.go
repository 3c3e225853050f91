package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/sorcerer/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step is a single screen of the setup wizard. Returning a nil Step moves on.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// conditional skips its step unless when reports true for the answers so far.
type conditional struct {
	Step
	when func(*InstallState) bool
}

func onlyIf(when func(*InstallState) bool, s Step) Step {
	return conditional{Step: s, when: when}
}

func applies(s Step, state *InstallState) bool {
	if c, ok := s.(conditional); ok {
		return c.when(state)
	}
	return true
}

func providerIs(names ...string) func(*InstallState) bool {
	return func(s *InstallState) bool {
		for _, n := range names {
			if s.Get("LLM_PROVIDER") == n {
				return true
			}
		}
		return false
	}
}

func providerIsNot(names ...string) func(*InstallState) bool {
	is := providerIs(names...)
	return func(s *InstallState) bool { return !is(s) }
}

func telegramEnabled(s *InstallState) bool {
	return s.Get("ENABLE_TELEGRAM") == "true"
}

func getSteps() []Step {
	return []Step{
		NewSelectStep("Select the LLM provider", "LLM_PROVIDER",
			choice{"OpenRouter", "openrouter"},
			choice{"OpenAI", "openai"},
			choice{"Anthropic", "anthropic"},
			choice{"Ollama", "ollama"},
			choice{"Custom OpenAI-compatible endpoint", "custom"},
		),
		onlyIf(providerIs("custom"),
			NewInputStep("Enter the endpoint base URL", "LLM_BASE_URL", "https://api.example.com/v1", validated(validateURL))),
		onlyIf(providerIs("ollama"),
			NewInputStep("Enter the Ollama base URL", "LLM_BASE_URL", "http://localhost:11434/v1", optional(), validated(validateURL))),
		onlyIf(providerIsNot("ollama"),
			NewInputStep("Enter the LLM API key", "LLM_API_KEY", "sk-...", secret())),
		NewInputStep("Enter the model name", "LLM_MODEL", "empty keeps google/gemma-3-27b-it:free", optional()),
		NewInputStep("Enter the embeddings base URL", "EMBEDDING_BASE_URL", "empty uses api.openai.com", optional(), validated(validateURL)),
		NewInputStep("Enter the embeddings API key", "EMBEDDING_API_KEY", "empty disables retrieval", optional(), secret()),
		NewInputStep("Enter the horoscope chart service URL", "CHART_SERVICE_URL", "http://localhost:9000", optional(), validated(validateURL)),
		NewSelectStep("Enable the Telegram bot", "ENABLE_TELEGRAM",
			choice{"No", "false"},
			choice{"Yes", "true"},
		),
		onlyIf(telegramEnabled,
			NewInputStep("Enter your Telegram bot token", "TELEGRAM_TOKEN", "123456789:ABCDEF...", secret())),
		onlyIf(telegramEnabled,
			NewInputStep("Allowed chat ids, comma separated", "TELEGRAM_ALLOWED_CHATS", "empty allows every chat", optional(), validated(validateChatIDs))),
		NewSaveStep(),
	}
}

type nextMsg struct{}

// model orchestrates the steps.
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	done        bool
	width       int
	height      int
}

func newModel(steps []Step, state *InstallState) model {
	return model{steps: steps, state: state}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting || m.done {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if next == nil {
		return m, m.advance()
	}
	// Keep the condition wrapper around the updated step.
	if c, ok := m.steps[m.currentStep].(conditional); ok {
		c.Step = next
		next = c
	}
	m.steps[m.currentStep] = next
	return m, cmd
}

// advance moves to the next applicable step, or finishes.
func (m *model) advance() tea.Cmd {
	for m.currentStep++; m.currentStep < len(m.steps); m.currentStep++ {
		if applies(m.steps[m.currentStep], m.state) {
			return m.steps[m.currentStep].Init()
		}
	}
	m.done = true
	return tea.Quit
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done {
		return "Configuration saved to " + m.state.EnvPath + "\n"
	}
	return titleStyle.Render(core.AppName+" setup") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard asks for provider credentials and writes them to envPath.
func RunWizard(envPath string, overwrite bool) (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps(), NewInstallState(envPath, overwrite)), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if !final.done {
		if save, ok := final.steps[final.currentStep].(*SaveStep); ok && save.err != nil {
			return nil, save.err
		}
		return nil, fmt.Errorf("setup interrupted")
	}
	return final.state, nil
}
