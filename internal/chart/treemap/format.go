package treemap

import (
	"math"

	"github.com/Rhymond/go-money"
)

// DefaultDisplayRate is the USD to EUR conversion applied at display
// time. A hardcoded demo stand-in, not a real FX feed; override it via
// configuration rather than pretending to a rate service that does not
// exist.
const DefaultDisplayRate = 0.82

// ValueFormatter formats a USD amount as a EUR display string.
type ValueFormatter struct {
	// Rate converts USD to EUR; zero means DefaultDisplayRate.
	Rate float64
}

// Format converts and renders the amount, e.g. 1753.40 -> "€1,437.79".
func (f ValueFormatter) Format(value float64) string {
	rate := f.Rate
	if rate == 0 {
		rate = DefaultDisplayRate
	}
	cents := int64(math.Round(value * rate * 100))
	return money.New(cents, money.EUR).Display()
}
