package store

import "github.com/hteval/hteval/internal/domain"

// AnalysisStore keeps the immutable history of sensitivity analysis runs.
// Results are cloned on the way in and out so callers cannot mutate stored
// history through a returned slice.
type AnalysisStore struct {
	analyses *memoryStore[domain.SensitivityAnalysisResult]
}

// NewAnalysisStore creates an empty analysis store
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{analyses: newMemoryStore[domain.SensitivityAnalysisResult]()}
}

// Put stores a completed analysis under its id
func (as *AnalysisStore) Put(result domain.SensitivityAnalysisResult) {
	as.analyses.put(result.ID, cloneAnalysis(result))
}

// Get returns the stored analysis, or false when the id is unknown
func (as *AnalysisStore) Get(id string) (domain.SensitivityAnalysisResult, bool) {
	result, ok := as.analyses.get(id)
	if !ok {
		return domain.SensitivityAnalysisResult{}, false
	}
	return cloneAnalysis(result), true
}

// Len returns the number of stored analyses
func (as *AnalysisStore) Len() int {
	return as.analyses.len()
}

func cloneAnalysis(r domain.SensitivityAnalysisResult) domain.SensitivityAnalysisResult {
	out := r
	out.ParametersVaried = append([]string(nil), r.ParametersVaried...)
	out.Scenarios = append([]domain.ScenarioRecord(nil), r.Scenarios...)
	out.Tornado = append([]domain.TornadoEntry(nil), r.Tornado...)
	if r.Probabilistic != nil {
		p := *r.Probabilistic
		p.CostPercentiles = clonePercentiles(r.Probabilistic.CostPercentiles)
		p.EffectPercentiles = clonePercentiles(r.Probabilistic.EffectPercentiles)
		out.Probabilistic = &p
	}
	return out
}

func clonePercentiles[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
