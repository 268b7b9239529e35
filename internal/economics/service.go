// Package economics exposes the engine's operation surface: model CRUD,
// bulk parameter management, base-case evaluation, sensitivity analysis and
// budget impact projection over in-memory stores.
package economics

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/calculation"
	"github.com/hteval/hteval/internal/domain"
	"github.com/hteval/hteval/internal/store"
)

// Service wires the registries and calculators together. Each operation is
// independent; no failure is fatal to the process.
type Service struct {
	models   *store.ModelRegistry
	params   *store.ParameterStore
	analyses *store.AnalysisStore

	basecase    *calculation.BaseCaseCalculator
	sensitivity *calculation.SensitivityAnalyzer
	budget      *calculation.BudgetImpactCalculator

	log zerolog.Logger
}

// NewService creates a service with empty stores
func NewService(log zerolog.Logger) *Service {
	return &Service{
		models:      store.NewModelRegistry(),
		params:      store.NewParameterStore(),
		analyses:    store.NewAnalysisStore(),
		basecase:    calculation.NewBaseCaseCalculator(),
		sensitivity: calculation.NewSensitivityAnalyzer(),
		budget:      calculation.NewBudgetImpactCalculator(log),
		log:         log,
	}
}

// CreateModel validates and stores a new economic model
func (s *Service) CreateModel(m domain.EconomicModel) (domain.EconomicModel, error) {
	created, err := s.models.Create(m)
	if err != nil {
		return domain.EconomicModel{}, err
	}
	s.log.Info().Str("model_id", created.ID).Str("model_type", string(created.ModelType)).Msg("created economic model")
	return created, nil
}

// GetModel returns the model, or false when the id is unknown
func (s *Service) GetModel(id string) (domain.EconomicModel, bool) {
	return s.models.Get(id)
}

// ListModels returns models matching the filter, newest first
func (s *Service) ListModels(f store.ListFilter) []domain.EconomicModel {
	return s.models.List(f)
}

// UpdateModel applies a partial update to a stored model
func (s *Service) UpdateModel(id string, u domain.ModelUpdate) (domain.EconomicModel, error) {
	updated, err := s.models.Update(id, u)
	if err != nil {
		return domain.EconomicModel{}, err
	}
	s.log.Info().Str("model_id", id).Msg("updated economic model")
	return updated, nil
}

// DeleteModel removes the model and cascades deletion of its parameter set.
// It reports whether a record existed.
func (s *Service) DeleteModel(id string) bool {
	if !s.models.Delete(id) {
		return false
	}
	s.params.Delete(id)
	s.log.Info().Str("model_id", id).Msg("deleted economic model")
	return true
}

// SetParameters validates and stores the full parameter set for a model,
// replacing any previous set. Fails with domain.ErrModelNotFound when the
// model does not exist and domain.ErrInvalidParameterData when any parameter
// is invalid; nothing is stored in either case.
func (s *Service) SetParameters(modelID string, params map[string]domain.ModelParameter) error {
	if !s.models.Exists(modelID) {
		return fmt.Errorf("%w: %s", domain.ErrModelNotFound, modelID)
	}
	if err := s.params.Set(modelID, params); err != nil {
		return err
	}
	s.log.Info().Str("model_id", modelID).Int("parameters", len(params)).Msg("stored parameter set")
	return nil
}

// GetParameters returns the stored parameter set, or an empty map
func (s *Service) GetParameters(modelID string) map[string]domain.ModelParameter {
	return s.params.Get(modelID)
}

// RunBaseCase evaluates the model at its parameter base values. The result
// is a pure function of model and parameters at call time; nothing is
// persisted.
func (s *Service) RunBaseCase(modelID string) (domain.BaseCaseResult, error) {
	model, ok := s.models.Get(modelID)
	if !ok {
		return domain.BaseCaseResult{}, fmt.Errorf("%w: %s", domain.ErrModelNotFound, modelID)
	}
	return s.basecase.Run(model, s.params.Get(modelID)), nil
}

// RunSensitivityAnalysis runs a one-way or probabilistic analysis and
// persists the result as an immutable history record.
func (s *Service) RunSensitivityAnalysis(modelID string, cfg domain.SensitivityConfig) (domain.SensitivityAnalysisResult, error) {
	model, ok := s.models.Get(modelID)
	if !ok {
		return domain.SensitivityAnalysisResult{}, fmt.Errorf("%w: %s", domain.ErrModelNotFound, modelID)
	}
	result, err := s.sensitivity.Run(model, s.params.Get(modelID), cfg)
	if err != nil {
		return domain.SensitivityAnalysisResult{}, err
	}
	s.analyses.Put(result)
	s.log.Info().
		Str("model_id", modelID).
		Str("analysis_id", result.ID).
		Str("analysis_type", string(result.AnalysisType)).
		Int("scenarios", len(result.Scenarios)).
		Msg("completed sensitivity analysis")
	return result, nil
}

// GetSensitivityAnalysis returns a stored analysis by id
func (s *Service) GetSensitivityAnalysis(id string) (domain.SensitivityAnalysisResult, bool) {
	return s.analyses.Get(id)
}

// CalculateBudgetImpact projects budget impact for the model. The result is
// computed on demand and not persisted.
func (s *Service) CalculateBudgetImpact(modelID string, cfg domain.BudgetImpactConfig) (domain.BudgetImpactResult, error) {
	model, ok := s.models.Get(modelID)
	if !ok {
		return domain.BudgetImpactResult{}, fmt.Errorf("%w: %s", domain.ErrModelNotFound, modelID)
	}
	return s.budget.Calculate(model, s.params.Get(modelID), cfg), nil
}

// Statistics summarizes stored models, parameters and analyses
func (s *Service) Statistics() domain.Statistics {
	models := s.models.All()

	stats := domain.Statistics{
		TotalModels:         len(models),
		ByType:              make(map[domain.ModelType]int),
		ByCurrency:          make(map[domain.Currency]int),
		TotalParameters:     s.params.TotalCount(),
		SensitivityAnalyses: s.analyses.Len(),
	}
	for _, m := range models {
		stats.ByType[m.ModelType]++
		stats.ByCurrency[m.Currency]++
	}
	if len(models) > 0 {
		stats.AverageParametersPerModel = decimal.NewFromInt(int64(stats.TotalParameters)).
			Div(decimal.NewFromInt(int64(len(models)))).Round(1)
	}
	return stats
}
