package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PortfolioLoadedMsg:
		m.portfolio = msg.Portfolio
		m.svc = msg.Svc
		m.loading = false
		if len(msg.Portfolio.Models) > 0 {
			m.selectedModel = msg.Portfolio.Models[0].ID
		}
		return m, nil

	case ModelSelectedMsg:
		m.selectedModel = msg.ModelID
		m.baseCaseResult = nil
		m.sensitivityResult = nil
		m.budgetResult = nil
		return m, nil

	case BaseCaseCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.baseCaseResult = msg.Result
		}
		return m, nil

	case SensitivityCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.sensitivityResult = msg.Result
		}
		return m, nil

	case BudgetCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.budgetResult = msg.Result
		}
		return m, nil
	}

	return m, nil
}

var (
	keyUp    = key.NewBinding(key.WithKeys("up", "k"))
	keyDown  = key.NewBinding(key.WithKeys("down", "j"))
	keyEnter = key.NewBinding(key.WithKeys("enter"))
)

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key clears a displayed error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m.navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneHome {
			target := SceneHome
			if m.previousScene != m.currentScene {
				target = m.previousScene
			}
			return m.navigate(target)
		}
		return m, nil

	case "h":
		return m.navigate(SceneHome)

	case "m":
		return m.navigate(SceneModels)

	case "b":
		if m.svc == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Running base case..."
		m.previousScene = m.currentScene
		m.currentScene = SceneBaseCase
		return m, m.runBaseCaseCmd(m.selectedModel)

	case "s":
		if m.svc == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Running sensitivity analysis..."
		m.previousScene = m.currentScene
		m.currentScene = SceneSensitivity
		return m, m.runSensitivityCmd(m.selectedModel)

	case "i":
		if m.svc == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Projecting budget impact..."
		m.previousScene = m.currentScene
		m.currentScene = SceneBudget
		return m, m.runBudgetCmd(m.selectedModel)
	}

	if m.currentScene == SceneModels {
		return m.handleModelListKey(msg)
	}

	return m, nil
}

// handleModelListKey processes keys on the model list scene
func (m Model) handleModelListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.portfolio == nil || len(m.portfolio.Models) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil

	case key.Matches(msg, keyDown):
		if m.selectedIndex < len(m.portfolio.Models)-1 {
			m.selectedIndex++
		}
		return m, nil

	case key.Matches(msg, keyEnter):
		modelID := m.portfolio.Models[m.selectedIndex].ID
		return m, func() tea.Msg {
			return ModelSelectedMsg{ModelID: modelID}
		}
	}

	return m, nil
}

// navigate switches scenes, remembering where we came from
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if m.currentScene == scene {
		return m, nil
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m, nil
}
