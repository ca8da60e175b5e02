package domain

import "sort"

// Diff partitions the identities of a remote listing and a watermark.
// Every identity present in either input falls into exactly one bucket.
type Diff struct {
	// New identities are listed remotely but absent from the watermark.
	New []string

	// Changed identities are in both with differing tokens.
	Changed []string

	// Deleted identities are in the watermark but no longer listed.
	Deleted []string

	// Unchanged identities are in both with equal tokens.
	Unchanged []string
}

// ComputeDiff compares a remote listing against a watermark.
// It is pure and deterministic: each bucket is sorted. When a listing
// contains the same identity twice, the last entry wins.
func ComputeDiff(listing []RemoteDocument, watermark Watermark) Diff {
	current := ListingTokens(listing)

	var d Diff
	for id, token := range current {
		prior, seen := watermark[id]
		switch {
		case !seen:
			d.New = append(d.New, id)
		case prior != token:
			d.Changed = append(d.Changed, id)
		default:
			d.Unchanged = append(d.Unchanged, id)
		}
	}
	for id := range watermark {
		if _, listed := current[id]; !listed {
			d.Deleted = append(d.Deleted, id)
		}
	}

	sort.Strings(d.New)
	sort.Strings(d.Changed)
	sort.Strings(d.Deleted)
	sort.Strings(d.Unchanged)
	return d
}

// ListingTokens reduces a listing to an identity -> token map.
func ListingTokens(listing []RemoteDocument) Watermark {
	tokens := make(Watermark, len(listing))
	for _, doc := range listing {
		tokens[doc.ID] = doc.Token
	}
	return tokens
}

// Pending returns the identities that need the content pipeline (new then changed).
func (d Diff) Pending() []string {
	out := make([]string, 0, len(d.New)+len(d.Changed))
	out = append(out, d.New...)
	return append(out, d.Changed...)
}

// Total returns the number of identities covered by the diff.
func (d Diff) Total() int {
	return len(d.New) + len(d.Changed) + len(d.Deleted) + len(d.Unchanged)
}

// IsEmpty reports whether the diff requires no mutation.
func (d Diff) IsEmpty() bool {
	return len(d.New) == 0 && len(d.Changed) == 0 && len(d.Deleted) == 0
}
