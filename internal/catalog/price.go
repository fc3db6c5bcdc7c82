package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a product price exactly as it arrived from the catalog source:
// either a bare number or a display string such as "₹54,990". The raw text is
// preserved so persisted carts round-trip unchanged; Amount is the one place
// display prices are turned back into numbers before arithmetic.
type Price string

// Amount extracts the numeric value: every rune that is not an ASCII digit or
// a decimal point is discarded and the remainder parsed as a float. Anything
// unparseable is worth zero.
func (p Price) Amount() float64 {
	var b strings.Builder
	for _, r := range string(p) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (p *Price) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price: want number or string, got %s", string(b))
	}
	*p = Price(n.String())
	return nil
}

// MarshalJSON always emits the raw text as a string, so a price that arrived
// as "₹54,990" is still "₹54,990" after a save/load cycle.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}
