package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hteval/hteval/internal/domain"
)

func newModel(id string, mt domain.ModelType) domain.EconomicModel {
	return domain.EconomicModel{
		ID:           id,
		Name:         "Model " + id,
		ModelType:    mt,
		Currency:     domain.CurrencyUSD,
		TimeHorizon:  5,
		DiscountRate: decimal.NewFromFloat(0.03),
	}
}

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewModelRegistry()

	created, err := r.Create(newModel("cea_1", domain.ModelTypeCEA))
	require.NoError(t, err)
	assert.Equal(t, "cea_1", created.ID)
	assert.False(t, created.CreatedAt.IsZero(), "Should set creation timestamp")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, ok := r.Get("cea_1")
	require.True(t, ok)
	assert.Equal(t, created, got)

	again, ok := r.Get("cea_1")
	require.True(t, ok)
	assert.Equal(t, got, again, "Repeated reads should return identical records")
}

func TestRegistryCreateAssignsID(t *testing.T) {
	r := NewModelRegistry()
	m := newModel("", domain.ModelTypeCUA)

	created, err := r.Create(m)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "Empty id should be assigned a generated one")

	_, ok := r.Get(created.ID)
	assert.True(t, ok)
}

func TestRegistryCreateInvalid(t *testing.T) {
	r := NewModelRegistry()
	m := newModel("bad", "regression")

	_, err := r.Create(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelData))
	assert.Equal(t, 0, r.Len(), "Nothing should be stored on validation failure")
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewModelRegistry()
	_, ok := r.Get("nope")
	assert.False(t, ok)
	assert.False(t, r.Exists("nope"))
}

func TestRegistryListFiltersAndPaginates(t *testing.T) {
	r := NewModelRegistry()
	for i := 0; i < 7; i++ {
		mt := domain.ModelTypeCEA
		if i%2 == 1 {
			mt = domain.ModelTypeBIA
		}
		_, err := r.Create(newModel(fmt.Sprintf("m_%d", i), mt))
		require.NoError(t, err)
	}

	all := r.List(ListFilter{Limit: 100})
	assert.Len(t, all, 7)

	cea := r.List(ListFilter{ModelType: domain.ModelTypeCEA, Limit: 100})
	assert.Len(t, cea, 4)
	for _, m := range cea {
		assert.Equal(t, domain.ModelTypeCEA, m.ModelType)
	}

	usd := r.List(ListFilter{Currency: domain.CurrencyEUR, Limit: 100})
	assert.Empty(t, usd, "No EUR models were created")
}

func TestRegistryListPaginationPartitions(t *testing.T) {
	r := NewModelRegistry()
	for i := 0; i < 5; i++ {
		_, err := r.Create(newModel(fmt.Sprintf("m_%d", i), domain.ModelTypeCEA))
		require.NoError(t, err)
	}

	page1 := r.List(ListFilter{Limit: 2, Offset: 0})
	page2 := r.List(ListFilter{Limit: 2, Offset: 2})
	page3 := r.List(ListFilter{Limit: 2, Offset: 4})

	seen := map[string]bool{}
	for _, page := range [][]domain.EconomicModel{page1, page2, page3} {
		for _, m := range page {
			assert.False(t, seen[m.ID], "Pages should not overlap")
			seen[m.ID] = true
		}
	}
	assert.Len(t, seen, 5, "Pages should cover the full set")

	beyond := r.List(ListFilter{Limit: 2, Offset: 10})
	assert.Empty(t, beyond, "Offset beyond the end should return an empty page")
}

func TestRegistryListDefaultLimit(t *testing.T) {
	r := NewModelRegistry()
	for i := 0; i < DefaultListLimit+5; i++ {
		_, err := r.Create(newModel(fmt.Sprintf("m_%d", i), domain.ModelTypeCEA))
		require.NoError(t, err)
	}

	page := r.List(ListFilter{})
	assert.Len(t, page, DefaultListLimit)
}

func TestRegistryUpdate(t *testing.T) {
	r := NewModelRegistry()
	created, err := r.Create(newModel("m_1", domain.ModelTypeCEA))
	require.NoError(t, err)

	newName := "Updated Name"
	updated, err := r.Update("m_1", domain.ModelUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, created.ModelType, updated.ModelType, "Unset fields should be unchanged")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt), "UpdatedAt should be refreshed")
}

func TestRegistryUpdateUnknown(t *testing.T) {
	r := NewModelRegistry()
	name := "x"
	_, err := r.Update("missing", domain.ModelUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegistryUpdateInvalidLeavesRecordUnchanged(t *testing.T) {
	r := NewModelRegistry()
	created, err := r.Create(newModel("m_1", domain.ModelTypeCEA))
	require.NoError(t, err)

	bad := domain.Currency("BTC")
	_, err = r.Update("m_1", domain.ModelUpdate{Currency: &bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidModelData))

	got, ok := r.Get("m_1")
	require.True(t, ok)
	assert.Equal(t, created, got, "Failed update should leave the record untouched")
}

func TestRegistryDelete(t *testing.T) {
	r := NewModelRegistry()
	_, err := r.Create(newModel("m_1", domain.ModelTypeCEA))
	require.NoError(t, err)

	assert.True(t, r.Delete("m_1"))
	assert.False(t, r.Exists("m_1"))
	assert.False(t, r.Delete("m_1"), "Second delete should report no record")
}
