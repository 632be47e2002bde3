// Package fees implements the Rocket Growth seller fee and margin engine:
// category commission lookup, price/size tiered logistics fees, and the
// profit, margin and purchase-ceiling derivations built on them.
//
// Everything here is pure. A Schedule is never mutated after it is built,
// so one value can serve any number of goroutines.
package fees

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule wraps every Schedule validation failure.
var ErrInvalidSchedule = errors.New("invalid fee schedule")

// Schedule bundles the rate and fee tables the engine computes against.
type Schedule struct {
	Keywords    []KeywordRate
	DefaultRate float64
	Brackets    []PriceBracket
	Matrix      []FeeRow
}

// DefaultSchedule returns a fresh copy of the price-tiered schedule.
func DefaultSchedule() *Schedule {
	return &Schedule{
		Keywords:    DefaultKeywords(),
		DefaultRate: DefaultRate,
		Brackets:    DefaultBrackets(),
		Matrix:      DefaultMatrix(),
	}
}

// WithKeywords returns a copy of s using kws as its keyword table.
func (s *Schedule) WithKeywords(kws []KeywordRate) *Schedule {
	out := *s
	out.Keywords = append([]KeywordRate(nil), kws...)
	return &out
}

// Validate checks that rates are fractions, brackets partition [0, ∞) and
// the fee matrix covers every bracket.
func (s *Schedule) Validate() error {
	var errs []error

	if !validRate(s.DefaultRate) {
		errs = append(errs, fmt.Errorf("default rate %v outside [0,1]", s.DefaultRate))
	}
	for _, kw := range s.Keywords {
		if kw.Keyword == "" {
			errs = append(errs, errors.New("empty keyword"))
		}
		if !validRate(kw.Rate) {
			errs = append(errs, fmt.Errorf("rate for %q %v outside [0,1]", kw.Keyword, kw.Rate))
		}
	}
	if err := validBrackets(s.Brackets); err != nil {
		errs = append(errs, err)
	}
	if err := validMatrix(s.Matrix, len(s.Brackets)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSchedule, errors.Join(errs...))
}

func validRate(r float64) bool {
	return r >= 0 && r <= 1
}
