package tui

import (
	"github.com/hteval/hteval/internal/config"
	"github.com/hteval/hteval/internal/domain"
	"github.com/hteval/hteval/internal/economics"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneModels
	SceneBaseCase
	SceneSensitivity
	SceneBudget
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PortfolioLoadedMsg signals the portfolio file has been loaded and the
// service seeded
type PortfolioLoadedMsg struct {
	Portfolio *config.Portfolio
	Svc       *economics.Service
}

// ModelSelectedMsg signals a model has been selected from the list
type ModelSelectedMsg struct {
	ModelID string
}

// BaseCaseCompleteMsg carries a finished base case run
type BaseCaseCompleteMsg struct {
	ModelID string
	Result  *domain.BaseCaseResult
	Err     error
}

// SensitivityCompleteMsg carries a finished sensitivity analysis
type SensitivityCompleteMsg struct {
	ModelID string
	Result  *domain.SensitivityAnalysisResult
	Err     error
}

// BudgetCompleteMsg carries a finished budget impact projection
type BudgetCompleteMsg struct {
	ModelID string
	Result  *domain.BudgetImpactResult
	Err     error
}
