// Package vocab holds the canonical column vocabulary. Translators map
// vendor specific names onto these so that every transformation downstream
// of a translator can rely on one stable set of labels.
package vocab

import "sort"

const (
	Date      = "date"
	Ticker    = "ticker"
	Attribute = "attribute"

	Open     = "open"
	High     = "high"
	Low      = "low"
	Close    = "close"
	AdjClose = "adj_close"
	Volume   = "volume"

	Returns = "returns"
	Price   = "price"
)

var canonical = map[string]struct{}{
	Date:      {},
	Ticker:    {},
	Attribute: {},
	Open:      {},
	High:      {},
	Low:       {},
	Close:     {},
	AdjClose:  {},
	Volume:    {},
	Returns:   {},
	Price:     {},
}

// Names returns the canonical names, sorted. The slice is a fresh copy on
// every call.
func Names() []string {
	out := make([]string, 0, len(canonical))
	for name := range canonical {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// IsCanonical reports whether a name belongs to the vocabulary.
func IsCanonical(name string) bool {
	_, ok := canonical[name]

	return ok
}
