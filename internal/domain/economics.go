package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ModelType identifies the economic evaluation framework of a model
type ModelType string

const (
	ModelTypeCEA          ModelType = "cost_effectiveness"
	ModelTypeCUA          ModelType = "cost_utility"
	ModelTypeBIA          ModelType = "budget_impact"
	ModelTypeDecisionTree ModelType = "decision_tree"
	ModelTypeMarkov       ModelType = "markov"
)

// Valid reports whether the model type is one of the recognized frameworks
func (mt ModelType) Valid() bool {
	switch mt {
	case ModelTypeCEA, ModelTypeCUA, ModelTypeBIA, ModelTypeDecisionTree, ModelTypeMarkov:
		return true
	}
	return false
}

// Currency is an ISO 4217 style currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

// Valid reports whether the currency code is recognized
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyCHF, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

// CostCategory classifies a model parameter for cost aggregation
type CostCategory string

const (
	CategoryDirectMedical    CostCategory = "direct_medical"
	CategoryDirectNonMedical CostCategory = "direct_non_medical"
	CategoryIndirect         CostCategory = "indirect"
	CategoryUtility          CostCategory = "utility"
	CategoryOther            CostCategory = "other"
)

// Valid reports whether the cost category is recognized
func (cc CostCategory) Valid() bool {
	switch cc {
	case CategoryDirectMedical, CategoryDirectNonMedical, CategoryIndirect, CategoryUtility, CategoryOther:
		return true
	}
	return false
}

// DistributionType names the sampling distribution attached to a parameter.
// The empty string means the parameter is fixed at its base value.
type DistributionType string

const (
	DistributionNone    DistributionType = ""
	DistributionNormal  DistributionType = "normal"
	DistributionBeta    DistributionType = "beta"
	DistributionUniform DistributionType = "uniform"
)

// Valid reports whether the distribution type is recognized
func (dt DistributionType) Valid() bool {
	switch dt {
	case DistributionNone, DistributionNormal, DistributionBeta, DistributionUniform:
		return true
	}
	return false
}

// Lifetime marks an open-ended analysis horizon.
const Lifetime TimeHorizon = -1

// TimeHorizon is an analysis horizon in whole years, the Lifetime sentinel,
// or zero when unset. It round-trips the "lifetime" string in YAML and JSON.
type TimeHorizon int

// IsLifetime reports whether the horizon is the lifetime sentinel
func (th TimeHorizon) IsLifetime() bool { return th == Lifetime }

// EffectYears returns the multiplier applied to per-year utility values.
// Lifetime and unset horizons contribute a single year.
func (th TimeHorizon) EffectYears() decimal.Decimal {
	if th > 0 {
		return decimal.NewFromInt(int64(th))
	}
	return decimal.NewFromInt(1)
}

func (th TimeHorizon) String() string {
	if th.IsLifetime() {
		return "lifetime"
	}
	return fmt.Sprintf("%d", int(th))
}

// UnmarshalYAML accepts either an integer year count or the string "lifetime"
func (th *TimeHorizon) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil && strings.EqualFold(s, "lifetime") {
		*th = Lifetime
		return nil
	}
	var years int
	if err := value.Decode(&years); err != nil {
		return fmt.Errorf("time horizon must be a year count or \"lifetime\": %w", err)
	}
	*th = TimeHorizon(years)
	return nil
}

// MarshalYAML emits "lifetime" for the sentinel and a plain integer otherwise
func (th TimeHorizon) MarshalYAML() (interface{}, error) {
	if th.IsLifetime() {
		return "lifetime", nil
	}
	return int(th), nil
}

// MarshalJSON mirrors the YAML representation
func (th TimeHorizon) MarshalJSON() ([]byte, error) {
	if th.IsLifetime() {
		return []byte(`"lifetime"`), nil
	}
	return []byte(fmt.Sprintf("%d", int(th))), nil
}

// UnmarshalJSON accepts either an integer year count or the string "lifetime"
func (th *TimeHorizon) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if strings.EqualFold(s, "lifetime") {
		*th = Lifetime
		return nil
	}
	var years int
	if _, err := fmt.Sscanf(s, "%d", &years); err != nil {
		return fmt.Errorf("time horizon must be a year count or \"lifetime\": %w", err)
	}
	*th = TimeHorizon(years)
	return nil
}

// EconomicModel is the metadata record for a health economic model
type EconomicModel struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Description  string          `yaml:"description,omitempty" json:"description,omitempty"`
	ModelType    ModelType       `yaml:"model_type" json:"modelType"`
	Currency     Currency        `yaml:"currency" json:"currency"`
	TimeHorizon  TimeHorizon     `yaml:"time_horizon,omitempty" json:"timeHorizon,omitempty"`
	DiscountRate decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
	CreatedAt    time.Time       `yaml:"-" json:"createdAt"`
	UpdatedAt    time.Time       `yaml:"-" json:"updatedAt"`
}

// Validate checks the model invariants. Violations unwrap to
// ErrInvalidModelData.
func (m *EconomicModel) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return invalidModel("name", "is required")
	}
	if !m.ModelType.Valid() {
		return invalidModel("model_type", fmt.Sprintf("unrecognized type %q", string(m.ModelType)))
	}
	if !m.Currency.Valid() {
		return invalidModel("currency", fmt.Sprintf("unrecognized code %q", string(m.Currency)))
	}
	if m.DiscountRate.IsNegative() {
		return invalidModel("discount_rate", "must be >= 0")
	}
	if m.TimeHorizon < 0 && !m.TimeHorizon.IsLifetime() {
		return invalidModel("time_horizon", "must be positive or \"lifetime\"")
	}
	return nil
}

// ModelParameter is a named input to an economic model. Uniform distributions
// draw between MinValue and MaxValue, which double as the one-way sensitivity
// bounds.
type ModelParameter struct {
	Name         string           `yaml:"-" json:"name"`
	BaseValue    decimal.Decimal  `yaml:"base_value" json:"baseValue"`
	Distribution DistributionType `yaml:"distribution,omitempty" json:"distribution,omitempty"`
	StdDev       *decimal.Decimal `yaml:"std_dev,omitempty" json:"stdDev,omitempty"`
	Alpha        *decimal.Decimal `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	Beta         *decimal.Decimal `yaml:"beta,omitempty" json:"beta,omitempty"`
	MinValue     *decimal.Decimal `yaml:"min_value,omitempty" json:"minValue,omitempty"`
	MaxValue     *decimal.Decimal `yaml:"max_value,omitempty" json:"maxValue,omitempty"`
	Category     CostCategory     `yaml:"category" json:"category"`
	Source       string           `yaml:"source,omitempty" json:"source,omitempty"`
}

// Validate checks the parameter invariants, including the shape arguments
// required by its distribution. Violations unwrap to ErrInvalidParameterData.
func (p *ModelParameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidParameter(p.Name, "name", "is required")
	}
	if !p.Category.Valid() {
		return invalidParameter(p.Name, "category", fmt.Sprintf("unrecognized category %q", string(p.Category)))
	}
	if p.MinValue != nil && p.MaxValue != nil && p.MinValue.GreaterThan(*p.MaxValue) {
		return invalidParameter(p.Name, "min_value", "must be <= max_value")
	}
	switch p.Distribution {
	case DistributionNone:
	case DistributionNormal:
		if p.StdDev == nil {
			return invalidParameter(p.Name, "std_dev", "is required for normal distribution")
		}
		if p.StdDev.IsNegative() {
			return invalidParameter(p.Name, "std_dev", "must be >= 0")
		}
	case DistributionBeta:
		if p.Alpha == nil || p.Beta == nil {
			return invalidParameter(p.Name, "alpha/beta", "are required for beta distribution")
		}
		if !p.Alpha.IsPositive() || !p.Beta.IsPositive() {
			return invalidParameter(p.Name, "alpha/beta", "must be > 0")
		}
	case DistributionUniform:
		if p.MinValue == nil || p.MaxValue == nil {
			return invalidParameter(p.Name, "min_value/max_value", "are required for uniform distribution")
		}
	default:
		return invalidParameter(p.Name, "distribution", fmt.Sprintf("unrecognized distribution %q", string(p.Distribution)))
	}
	return nil
}

// ValidateParameterSet validates every parameter in a bulk set. The first
// violation fails the whole set; callers must not store anything on error.
func ValidateParameterSet(params map[string]ModelParameter) error {
	for name, p := range params {
		if p.Name == "" {
			p.Name = name
		}
		if p.Name != name {
			return invalidParameter(name, "name", fmt.Sprintf("does not match map key %q", name))
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ModelUpdate carries a partial update for an economic model. Nil fields are
// left unchanged by the merge.
type ModelUpdate struct {
	Name         *string          `yaml:"name,omitempty" json:"name,omitempty"`
	Description  *string          `yaml:"description,omitempty" json:"description,omitempty"`
	ModelType    *ModelType       `yaml:"model_type,omitempty" json:"modelType,omitempty"`
	Currency     *Currency        `yaml:"currency,omitempty" json:"currency,omitempty"`
	TimeHorizon  *TimeHorizon     `yaml:"time_horizon,omitempty" json:"timeHorizon,omitempty"`
	DiscountRate *decimal.Decimal `yaml:"discount_rate,omitempty" json:"discountRate,omitempty"`
}

// ApplyTo merges the update over a copy of the model and returns the merged
// record. The receiver's UpdatedAt is not touched here; the registry refreshes
// it only after the merged record validates.
func (u *ModelUpdate) ApplyTo(m EconomicModel) EconomicModel {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.ModelType != nil {
		m.ModelType = *u.ModelType
	}
	if u.Currency != nil {
		m.Currency = *u.Currency
	}
	if u.TimeHorizon != nil {
		m.TimeHorizon = *u.TimeHorizon
	}
	if u.DiscountRate != nil {
		m.DiscountRate = *u.DiscountRate
	}
	return m
}
