package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hteval/hteval/internal/config"
	"github.com/hteval/hteval/internal/domain"
	"github.com/hteval/hteval/internal/economics"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Portfolio and service
	portfolioPath string
	portfolio     *config.Portfolio
	svc           *economics.Service

	// Current selections
	selectedIndex int
	selectedModel string

	// Analysis results for the selected model
	baseCaseResult    *domain.BaseCaseResult
	sensitivityResult *domain.SensitivityAnalysisResult
	budgetResult      *domain.BudgetImpactResult

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(portfolioPath string) Model {
	return Model{
		currentScene:  SceneHome,
		portfolioPath: portfolioPath,
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadPortfolioCmd(m.portfolioPath)
}

// loadPortfolioCmd returns a command that loads the portfolio file and
// seeds a fresh service from it
func loadPortfolioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewPortfolioParser()
		portfolio, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		svc := economics.NewService(zerolog.Nop())
		if err := svc.LoadPortfolio(portfolio); err != nil {
			return ErrorMsg{Err: err}
		}

		return PortfolioLoadedMsg{Portfolio: portfolio, Svc: svc}
	}
}

// runBaseCaseCmd returns a command that runs the base case for a model
func (m Model) runBaseCaseCmd(modelID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := svc.RunBaseCase(modelID)
		if err != nil {
			return BaseCaseCompleteMsg{ModelID: modelID, Err: err}
		}
		return BaseCaseCompleteMsg{ModelID: modelID, Result: &result}
	}
}

// runSensitivityCmd returns a command that runs the portfolio's configured
// sensitivity analysis for a model, falling back to a one-way run over all
// parameters
func (m Model) runSensitivityCmd(modelID string) tea.Cmd {
	svc := m.svc
	cfg := domain.SensitivityConfig{}
	if pm := m.portfolioModel(modelID); pm != nil && pm.Sensitivity != nil {
		cfg = *pm.Sensitivity
	}
	return func() tea.Msg {
		result, err := svc.RunSensitivityAnalysis(modelID, cfg)
		if err != nil {
			return SensitivityCompleteMsg{ModelID: modelID, Err: err}
		}
		return SensitivityCompleteMsg{ModelID: modelID, Result: &result}
	}
}

// runBudgetCmd returns a command that runs the portfolio's configured
// budget impact projection for a model
func (m Model) runBudgetCmd(modelID string) tea.Cmd {
	svc := m.svc
	cfg := domain.BudgetImpactConfig{}
	if pm := m.portfolioModel(modelID); pm != nil && pm.BudgetImpact != nil {
		cfg = *pm.BudgetImpact
	}
	return func() tea.Msg {
		result, err := svc.CalculateBudgetImpact(modelID, cfg)
		if err != nil {
			return BudgetCompleteMsg{ModelID: modelID, Err: err}
		}
		return BudgetCompleteMsg{ModelID: modelID, Result: &result}
	}
}

// portfolioModel looks up a portfolio entry by model id
func (m Model) portfolioModel(modelID string) *config.PortfolioModel {
	if m.portfolio == nil {
		return nil
	}
	for i := range m.portfolio.Models {
		if m.portfolio.Models[i].ID == modelID {
			return &m.portfolio.Models[i]
		}
	}
	return nil
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneModels:
		return "Models"
	case SceneBaseCase:
		return "Base Case"
	case SceneSensitivity:
		return "Sensitivity"
	case SceneBudget:
		return "Budget Impact"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
