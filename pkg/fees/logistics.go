package fees

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrUnknownSize is returned when a size tier string is not recognized.
var ErrUnknownSize = errors.New("unknown size tier")

// SizeTier is the Rocket Growth package size class.
type SizeTier string

// Size tiers, smallest to largest.
const (
	SizeExtraSmall SizeTier = "extra-small"
	SizeSmall      SizeTier = "small"
	SizeMedium     SizeTier = "medium"
	SizeLarge1     SizeTier = "large-1"
	SizeLarge2     SizeTier = "large-2"
	SizeExtraLarge SizeTier = "extra-large"
)

// SizeTiers lists every tier in display order.
var SizeTiers = []SizeTier{
	SizeExtraSmall,
	SizeSmall,
	SizeMedium,
	SizeLarge1,
	SizeLarge2,
	SizeExtraLarge,
}

var sizeLabels = map[SizeTier]string{
	SizeExtraSmall: "극소형",
	SizeSmall:      "소형",
	SizeMedium:     "중형",
	SizeLarge1:     "대형1",
	SizeLarge2:     "대형2",
	SizeExtraLarge: "특대형",
}

// Label returns the Korean display label for the tier.
func (s SizeTier) Label() string {
	if l, ok := sizeLabels[s]; ok {
		return l
	}
	return string(s)
}

// index returns the column of s in the fee matrix, or -1.
func (s SizeTier) index() int {
	for i, t := range SizeTiers {
		if t == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the six known tiers.
func (s SizeTier) Valid() bool {
	return s.index() >= 0
}

// ParseSize converts a tier name to a SizeTier.
func ParseSize(s string) (SizeTier, error) {
	t := SizeTier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSize, s)
	}
	return t, nil
}

// PriceBracket is a half-open sale price range [Min, Max). The top bracket
// has Max == 0 and is unbounded.
type PriceBracket struct {
	Min int64 `json:"min"`
	Max int64 `json:"max,omitempty"`
}

// Contains reports whether price falls in the bracket.
func (b PriceBracket) Contains(price float64) bool {
	if price < float64(b.Min) {
		return false
	}
	return b.Max == 0 || price < float64(b.Max)
}

// String renders the bracket as "[min,max)".
func (b PriceBracket) String() string {
	if b.Max == 0 {
		return fmt.Sprintf("[%d,∞)", b.Min)
	}
	return fmt.Sprintf("[%d,%d)", b.Min, b.Max)
}

// DefaultBrackets returns the eleven KRW sale-price brackets.
func DefaultBrackets() []PriceBracket {
	return []PriceBracket{
		{Min: 0, Max: 5000},
		{Min: 5000, Max: 10000},
		{Min: 10000, Max: 15000},
		{Min: 15000, Max: 20000},
		{Min: 20000, Max: 30000},
		{Min: 30000, Max: 40000},
		{Min: 40000, Max: 50000},
		{Min: 50000, Max: 60000},
		{Min: 60000, Max: 80000},
		{Min: 80000, Max: 100000},
		{Min: 100000},
	}
}

// FeeRow holds the pre-tax base fee for each size tier, indexed in
// SizeTiers order.
type FeeRow [6]int64

// DefaultMatrix returns the pre-tax logistics fee (inbound/outbound plus
// shipping) per price bracket and size tier.
func DefaultMatrix() []FeeRow {
	return []FeeRow{
		{2400, 2700, 3200, 4000, 5100, 8100},
		{2800, 3100, 3600, 4400, 5500, 8500},
		{3100, 3400, 3900, 4700, 5800, 8800},
		{3400, 3700, 4200, 5000, 6100, 9100},
		{3700, 4000, 4500, 5300, 6400, 9400},
		{3900, 4200, 4700, 5500, 6600, 9600},
		{4100, 4400, 4900, 5700, 6800, 9800},
		{4300, 4600, 5100, 5900, 7000, 10000},
		{4500, 4800, 5300, 6100, 7200, 10200},
		{4700, 5000, 5500, 6300, 7400, 10400},
		{4900, 5200, 5700, 6500, 7600, 10600},
	}
}

var (
	logisticsTax = decimal.RequireFromString("1.1")
	inboundShare = decimal.RequireFromString("0.42")
)

// BracketIndex returns the index of the bracket containing price. Negative
// and NaN prices land in the first bracket.
func (s *Schedule) BracketIndex(price float64) int {
	for i, b := range s.Brackets {
		if b.Contains(price) {
			return i
		}
	}
	return 0
}

// BracketFor returns the bracket containing price.
func (s *Schedule) BracketFor(price float64) PriceBracket {
	return s.Brackets[s.BracketIndex(price)]
}

// BaseFee returns the pre-tax fee for price and size. Unknown sizes are
// charged as medium.
func (s *Schedule) BaseFee(price float64, size SizeTier) int64 {
	col := size.index()
	if col < 0 {
		col = SizeMedium.index()
	}
	return s.Matrix[s.BracketIndex(price)][col]
}

// LookupFee returns the tax-inclusive logistics fee for price and size,
// rounded half-up to the won.
func (s *Schedule) LookupFee(price float64, size SizeTier) int64 {
	return withTax(s.BaseFee(price, size))
}

func withTax(base int64) int64 {
	return decimal.NewFromInt(base).Mul(logisticsTax).Round(0).IntPart()
}

// SplitLogistics divides a tax-inclusive logistics total into an
// inbound/outbound share (42 %, rounded) and the shipping remainder. The two
// parts always sum to total.
func SplitLogistics(total int64) (inbound, shipping int64) {
	inbound = decimal.NewFromInt(total).Mul(inboundShare).Round(0).IntPart()
	return inbound, total - inbound
}

// FeeCell is one row/column of the tax-inclusive logistics table.
type FeeCell struct {
	Bracket  PriceBracket `json:"bracket"`
	Size     SizeTier     `json:"size"`
	Label    string       `json:"label"`
	Base     int64        `json:"base"`
	Total    int64        `json:"total"`
	Inbound  int64        `json:"inbound"`
	Shipping int64        `json:"shipping"`
}

// Cells expands the fee matrix into one FeeCell per bracket and size.
func (s *Schedule) Cells() []FeeCell {
	cells := make([]FeeCell, 0, len(s.Brackets)*len(SizeTiers))
	for i := range s.Brackets {
		for _, size := range SizeTiers {
			cells = append(cells, s.cell(i, size))
		}
	}
	return cells
}

// Cell returns the table entry that applies to price and size. Unknown
// sizes are charged as medium.
func (s *Schedule) Cell(price float64, size SizeTier) FeeCell {
	if !size.Valid() {
		size = SizeMedium
	}
	return s.cell(s.BracketIndex(price), size)
}

func (s *Schedule) cell(row int, size SizeTier) FeeCell {
	base := s.Matrix[row][size.index()]
	total := withTax(base)
	in, ship := SplitLogistics(total)
	return FeeCell{
		Bracket:  s.Brackets[row],
		Size:     size,
		Label:    size.Label(),
		Base:     base,
		Total:    total,
		Inbound:  in,
		Shipping: ship,
	}
}

func validBrackets(brackets []PriceBracket) error {
	if len(brackets) == 0 {
		return errors.New("no price brackets")
	}
	if brackets[0].Min != 0 {
		return fmt.Errorf("first bracket must start at 0 (got %d)", brackets[0].Min)
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		switch {
		case last && b.Max != 0:
			return fmt.Errorf("last bracket %s must be unbounded", b)
		case !last && b.Max <= b.Min:
			return fmt.Errorf("bracket %s is empty", b)
		case !last && brackets[i+1].Min != b.Max:
			return fmt.Errorf("gap or overlap between %s and %s", b, brackets[i+1])
		}
	}
	return nil
}

func validMatrix(matrix []FeeRow, rows int) error {
	if len(matrix) != rows {
		return fmt.Errorf("fee matrix has %d rows, want %d", len(matrix), rows)
	}
	for i, row := range matrix {
		for j, fee := range row {
			if fee < 0 || fee > math.MaxInt32 {
				return fmt.Errorf("fee matrix [%d][%s] out of range: %d", i, SizeTiers[j], fee)
			}
		}
	}
	return nil
}
