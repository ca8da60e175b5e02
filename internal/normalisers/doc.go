// Package normalisers provides the Normaliser registry and helpers shared by
// the format-specific normalisers in its subpackages. Each normaliser extracts
// text from one family of MIME types; the registry picks the one with the
// highest priority for a raw document.
package normalisers
