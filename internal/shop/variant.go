package shop

import (
	"sort"
	"strings"
)

// Variant is the buyer's option selection for a product (e.g. color, size).
// Two variants describe the same selection regardless of the order the
// options were chosen in.
type Variant map[string]string

// Key returns the canonical identity of the selection: option names sorted,
// name=value pairs joined with ';'. The empty selection keys to "".
func (v Variant) Key() string {
	if len(v) == 0 {
		return ""
	}

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+v[name])
	}
	return strings.Join(pairs, ";")
}

func (v Variant) clone() Variant {
	out := make(Variant, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
