package economics

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hteval/hteval/internal/domain"
	"github.com/hteval/hteval/internal/store"
)

func newTestService() *Service {
	return NewService(zerolog.Nop())
}

func ceaModel(id string) domain.EconomicModel {
	return domain.EconomicModel{
		ID:           id,
		Name:         "CEA " + id,
		ModelType:    domain.ModelTypeCEA,
		Currency:     domain.CurrencyUSD,
		TimeHorizon:  5,
		DiscountRate: decimal.NewFromFloat(0.03),
	}
}

func ceaParams() map[string]domain.ModelParameter {
	return map[string]domain.ModelParameter{
		"drug_cost": {BaseValue: decimal.NewFromInt(1000), Category: domain.CategoryDirectMedical},
		"qaly_gain": {BaseValue: decimal.NewFromFloat(0.5), Category: domain.CategoryUtility},
	}
}

func seedModel(t *testing.T, svc *Service, id string) {
	t.Helper()
	_, err := svc.CreateModel(ceaModel(id))
	require.NoError(t, err)
	require.NoError(t, svc.SetParameters(id, ceaParams()))
}

func TestServiceModelLifecycle(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateModel(ceaModel("m_1"))
	require.NoError(t, err)

	got, ok := svc.GetModel("m_1")
	require.True(t, ok)
	assert.Equal(t, created, got)

	newName := "Renamed"
	updated, err := svc.UpdateModel("m_1", domain.ModelUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	assert.True(t, svc.DeleteModel("m_1"))
	_, ok = svc.GetModel("m_1")
	assert.False(t, ok)
	assert.False(t, svc.DeleteModel("m_1"))
}

func TestServiceDeleteCascadesParameters(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")
	require.Len(t, svc.GetParameters("m_1"), 2)

	require.True(t, svc.DeleteModel("m_1"))

	assert.Empty(t, svc.GetParameters("m_1"), "Deleting a model should drop its parameter set")

	// Recreating the id must start from a clean slate.
	_, err := svc.CreateModel(ceaModel("m_1"))
	require.NoError(t, err)
	assert.Empty(t, svc.GetParameters("m_1"))
}

func TestServiceSetParametersUnknownModel(t *testing.T) {
	svc := newTestService()

	err := svc.SetParameters("missing", ceaParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelNotFound))
}

func TestServiceListModels(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")
	_, err := svc.CreateModel(domain.EconomicModel{
		ID: "bia_1", Name: "BIA", ModelType: domain.ModelTypeBIA,
		Currency: domain.CurrencyEUR, TimeHorizon: 3,
	})
	require.NoError(t, err)

	all := svc.ListModels(store.ListFilter{Limit: 10})
	assert.Len(t, all, 2)

	bia := svc.ListModels(store.ListFilter{ModelType: domain.ModelTypeBIA})
	require.Len(t, bia, 1)
	assert.Equal(t, "bia_1", bia[0].ID)
}

func TestServiceRunBaseCase(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")

	result, err := svc.RunBaseCase("m_1")
	require.NoError(t, err)
	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, result.ICER)
	assert.True(t, result.ICER.Equal(decimal.NewFromInt(2000)))
}

func TestServiceAnalysesRequireModel(t *testing.T) {
	svc := newTestService()

	_, err := svc.RunBaseCase("missing")
	assert.True(t, errors.Is(err, domain.ErrModelNotFound))

	_, err = svc.RunSensitivityAnalysis("missing", domain.SensitivityConfig{})
	assert.True(t, errors.Is(err, domain.ErrModelNotFound))

	_, err = svc.CalculateBudgetImpact("missing", domain.BudgetImpactConfig{})
	assert.True(t, errors.Is(err, domain.ErrModelNotFound))
}

func TestServiceSensitivityPersistsHistory(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")

	result, err := svc.RunSensitivityAnalysis("m_1", domain.SensitivityConfig{})
	require.NoError(t, err)
	require.NotEmpty(t, result.ID)

	stored, ok := svc.GetSensitivityAnalysis(result.ID)
	require.True(t, ok)
	assert.Equal(t, result.ID, stored.ID)
	assert.Len(t, stored.Scenarios, len(result.Scenarios))

	// Mutating the returned record must not corrupt stored history.
	stored.Scenarios[0].Variation = "tampered"
	again, ok := svc.GetSensitivityAnalysis(result.ID)
	require.True(t, ok)
	assert.NotEqual(t, "tampered", again.Scenarios[0].Variation)
}

func TestServiceBudgetImpactNotPersisted(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")

	_, err := svc.CalculateBudgetImpact("m_1", domain.BudgetImpactConfig{})
	require.NoError(t, err)

	stats := svc.Statistics()
	assert.Equal(t, 0, stats.SensitivityAnalyses, "Budget impact runs should not add analysis history")
}

func TestServiceStatistics(t *testing.T) {
	svc := newTestService()
	seedModel(t, svc, "m_1")
	_, err := svc.CreateModel(domain.EconomicModel{
		ID: "bia_1", Name: "BIA", ModelType: domain.ModelTypeBIA,
		Currency: domain.CurrencyUSD, TimeHorizon: 3,
	})
	require.NoError(t, err)

	_, err = svc.RunSensitivityAnalysis("m_1", domain.SensitivityConfig{})
	require.NoError(t, err)

	stats := svc.Statistics()
	assert.Equal(t, 2, stats.TotalModels)
	assert.Equal(t, 1, stats.ByType[domain.ModelTypeCEA])
	assert.Equal(t, 1, stats.ByType[domain.ModelTypeBIA])
	assert.Equal(t, 2, stats.ByCurrency[domain.CurrencyUSD])
	assert.Equal(t, 2, stats.TotalParameters)
	assert.True(t, stats.AverageParametersPerModel.Equal(decimal.NewFromInt(1)),
		"2 parameters over 2 models should average 1.0, got %s", stats.AverageParametersPerModel)
	assert.Equal(t, 1, stats.SensitivityAnalyses)
}

func TestServiceStatisticsEmpty(t *testing.T) {
	svc := newTestService()

	stats := svc.Statistics()
	assert.Equal(t, 0, stats.TotalModels)
	assert.True(t, stats.AverageParametersPerModel.IsZero())
}
