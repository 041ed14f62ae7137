package alpha

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// GainPercent returns the relative gain of value over basis, as a percentage.
// A zero basis reports 0%, never NaN or an infinity.
func GainPercent(value, basis decimal.Decimal) Percent {
	if basis.IsZero() {
		return 0
	}
	ratio, _ := value.Sub(basis).Div(basis).Float64()
	return Percent(ratio * 100)
}
