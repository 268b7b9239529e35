package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hteval/hteval/internal/domain"
)

// DefaultListLimit is applied when a list request does not specify a page
// size.
const DefaultListLimit = 10

// modelRecord pairs a model with its insertion sequence. The sequence breaks
// creation-time ties so pagination stays stable when timestamps collide.
type modelRecord struct {
	model domain.EconomicModel
	seq   uint64
}

// ModelRegistry owns the economic model records. All mutations validate fully
// before writing, so a failed create or update leaves the stored record
// untouched.
type ModelRegistry struct {
	mu      sync.RWMutex
	models  map[string]modelRecord
	nextSeq uint64
}

// NewModelRegistry creates an empty registry
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{models: make(map[string]modelRecord)}
}

// Create validates and stores a new model. An empty id is assigned a UUID;
// created/updated timestamps are set here. Validation failures unwrap to
// domain.ErrInvalidModelData.
func (r *ModelRegistry) Create(m domain.EconomicModel) (domain.EconomicModel, error) {
	if err := m.Validate(); err != nil {
		return domain.EconomicModel{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	r.models[m.ID] = modelRecord{model: m, seq: r.nextSeq}
	return m, nil
}

// Get returns the model record, or false when the id is unknown
func (r *ModelRegistry) Get(id string) (domain.EconomicModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.models[id]
	return rec.model, ok
}

// Exists reports whether a model with the given id is stored
func (r *ModelRegistry) Exists(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// ListFilter narrows and paginates a List call. Zero-valued ModelType and
// Currency match everything; Limit <= 0 falls back to DefaultListLimit.
type ListFilter struct {
	ModelType domain.ModelType
	Currency  domain.Currency
	Limit     int
	Offset    int
}

// List returns models matching all provided filters, newest first, paginated
// with [offset, offset+limit). Sequential pages over an unchanged registry
// partition the matching set.
func (r *ModelRegistry) List(f ListFilter) []domain.EconomicModel {
	r.mu.RLock()
	matched := make([]modelRecord, 0, len(r.models))
	for _, rec := range r.models {
		if f.ModelType != "" && rec.model.ModelType != f.ModelType {
			continue
		}
		if f.Currency != "" && rec.model.Currency != f.Currency {
			continue
		}
		matched = append(matched, rec)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].model.CreatedAt.Equal(matched[j].model.CreatedAt) {
			return matched[i].model.CreatedAt.After(matched[j].model.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.EconomicModel{}
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]domain.EconomicModel, 0, end-offset)
	for _, rec := range matched[offset:end] {
		page = append(page, rec.model)
	}
	return page
}

// Update merges the partial update over the stored record, re-validates the
// merged result and refreshes UpdatedAt. Returns domain.ErrNotFound for an
// unknown id and domain.ErrInvalidModelData when the merge violates an
// invariant; the stored record is unchanged in both cases.
func (r *ModelRegistry) Update(id string, u domain.ModelUpdate) (domain.EconomicModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.models[id]
	if !ok {
		return domain.EconomicModel{}, domain.ErrNotFound
	}
	merged := u.ApplyTo(rec.model)
	if err := merged.Validate(); err != nil {
		return domain.EconomicModel{}, err
	}
	merged.UpdatedAt = time.Now().UTC()
	rec.model = merged
	r.models[id] = rec
	return merged, nil
}

// Delete removes the model and reports whether a record existed. Cascading
// removal of the parameter set is the service's responsibility.
func (r *ModelRegistry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[id]; !ok {
		return false
	}
	delete(r.models, id)
	return true
}

// Len returns the number of stored models
func (r *ModelRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// All returns every stored model in unspecified order
func (r *ModelRegistry) All() []domain.EconomicModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.EconomicModel, 0, len(r.models))
	for _, rec := range r.models {
		out = append(out, rec.model)
	}
	return out
}
