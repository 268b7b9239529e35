package economics

import (
	"fmt"

	"github.com/hteval/hteval/internal/config"
)

// LoadPortfolio seeds the service from a validated portfolio: every model is
// created (keeping its declared id) and its parameter set stored.
func (s *Service) LoadPortfolio(portfolio *config.Portfolio) error {
	for i := range portfolio.Models {
		pm := &portfolio.Models[i]

		created, err := s.CreateModel(pm.EconomicModel)
		if err != nil {
			return fmt.Errorf("model %q: %w", pm.Name, err)
		}
		// Propagate generated ids back so analysis configs can find them.
		pm.ID = created.ID

		if len(pm.Parameters) > 0 {
			if err := s.SetParameters(created.ID, pm.Parameters); err != nil {
				return fmt.Errorf("model %q parameters: %w", pm.Name, err)
			}
		}
	}
	return nil
}
