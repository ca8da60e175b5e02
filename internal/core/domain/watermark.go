package domain

import "sort"

// Watermark maps document identity to the last-processed change token.
type Watermark map[string]string

// Clone returns an independent copy of the watermark.
func (w Watermark) Clone() Watermark {
	out := make(Watermark, len(w))
	for id, token := range w {
		out[id] = token
	}
	return out
}

// IDs returns the identities in the watermark in sorted order.
func (w Watermark) IDs() []string {
	ids := make([]string, 0, len(w))
	for id := range w {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
