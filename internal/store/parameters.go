package store

import "github.com/hteval/hteval/internal/domain"

// ParameterStore holds each model's parameter set, keyed by model id. Entries
// are weak references to the registry: the service deletes a model's set when
// the model itself is deleted.
type ParameterStore struct {
	sets *memoryStore[map[string]domain.ModelParameter]
}

// NewParameterStore creates an empty parameter store
func NewParameterStore() *ParameterStore {
	return &ParameterStore{sets: newMemoryStore[map[string]domain.ModelParameter]()}
}

// Set validates every parameter and replaces the stored set for the model.
// The call is all-or-nothing: if any parameter is invalid the previous set is
// left completely unchanged and the error unwraps to
// domain.ErrInvalidParameterData. Model existence is the caller's check.
func (ps *ParameterStore) Set(modelID string, params map[string]domain.ModelParameter) error {
	if err := domain.ValidateParameterSet(params); err != nil {
		return err
	}
	stored := make(map[string]domain.ModelParameter, len(params))
	for name, p := range params {
		if p.Name == "" {
			p.Name = name
		}
		stored[name] = p
	}
	ps.sets.put(modelID, stored)
	return nil
}

// Get returns a copy of the stored parameter set, or an empty map when none
// has been set
func (ps *ParameterStore) Get(modelID string) map[string]domain.ModelParameter {
	set, ok := ps.sets.get(modelID)
	if !ok {
		return map[string]domain.ModelParameter{}
	}
	out := make(map[string]domain.ModelParameter, len(set))
	for name, p := range set {
		out[name] = p
	}
	return out
}

// Delete removes the parameter set for a model
func (ps *ParameterStore) Delete(modelID string) {
	ps.sets.delete(modelID)
}

// Count returns the number of parameters stored for a model
func (ps *ParameterStore) Count(modelID string) int {
	set, _ := ps.sets.get(modelID)
	return len(set)
}

// TotalCount returns the number of parameters stored across all models
func (ps *ParameterStore) TotalCount() int {
	total := 0
	for _, set := range ps.sets.snapshot() {
		total += len(set)
	}
	return total
}
