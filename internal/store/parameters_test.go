package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hteval/hteval/internal/domain"
)

func validParams() map[string]domain.ModelParameter {
	return map[string]domain.ModelParameter{
		"drug_cost": {BaseValue: decimal.NewFromInt(1000), Category: domain.CategoryDirectMedical},
		"qaly_gain": {BaseValue: decimal.NewFromFloat(0.5), Category: domain.CategoryUtility},
	}
}

func TestParameterStoreSetAndGet(t *testing.T) {
	ps := NewParameterStore()

	require.NoError(t, ps.Set("m_1", validParams()))
	assert.Equal(t, 2, ps.Count("m_1"))

	got := ps.Get("m_1")
	require.Len(t, got, 2)
	assert.Equal(t, "drug_cost", got["drug_cost"].Name, "Names should be filled from map keys")
	assert.True(t, got["drug_cost"].BaseValue.Equal(decimal.NewFromInt(1000)))
}

func TestParameterStoreSetReplacesWholeSet(t *testing.T) {
	ps := NewParameterStore()
	require.NoError(t, ps.Set("m_1", validParams()))

	replacement := map[string]domain.ModelParameter{
		"admin_cost": {BaseValue: decimal.NewFromInt(200), Category: domain.CategoryDirectMedical},
	}
	require.NoError(t, ps.Set("m_1", replacement))

	got := ps.Get("m_1")
	require.Len(t, got, 1, "Set should replace, not merge")
	_, hasOld := got["drug_cost"]
	assert.False(t, hasOld)
}

func TestParameterStoreSetAllOrNothing(t *testing.T) {
	ps := NewParameterStore()
	require.NoError(t, ps.Set("m_1", validParams()))

	bad := map[string]domain.ModelParameter{
		"good_cost": {BaseValue: decimal.NewFromInt(100), Category: domain.CategoryDirectMedical},
		"bad_param": {BaseValue: decimal.NewFromInt(1), Category: "nope"},
	}
	err := ps.Set("m_1", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameterData))

	got := ps.Get("m_1")
	assert.Len(t, got, 2, "Failed set should leave the previous set unchanged")
	_, hasNew := got["good_cost"]
	assert.False(t, hasNew, "No valid subset should have been stored")
}

func TestParameterStoreGetReturnsCopy(t *testing.T) {
	ps := NewParameterStore()
	require.NoError(t, ps.Set("m_1", validParams()))

	got := ps.Get("m_1")
	delete(got, "drug_cost")

	assert.Equal(t, 2, ps.Count("m_1"), "Mutating a returned map should not affect the store")
}

func TestParameterStoreGetUnknown(t *testing.T) {
	ps := NewParameterStore()
	got := ps.Get("missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParameterStoreDeleteAndTotals(t *testing.T) {
	ps := NewParameterStore()
	require.NoError(t, ps.Set("m_1", validParams()))
	require.NoError(t, ps.Set("m_2", map[string]domain.ModelParameter{
		"unit_cost": {BaseValue: decimal.NewFromInt(10), Category: domain.CategoryDirectMedical},
	}))

	assert.Equal(t, 3, ps.TotalCount())

	ps.Delete("m_1")
	assert.Equal(t, 0, ps.Count("m_1"))
	assert.Equal(t, 1, ps.TotalCount())
}
