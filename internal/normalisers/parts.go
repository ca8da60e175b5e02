package normalisers

import (
	"archive/zip"
	"sort"
	"strconv"
	"strings"
)

// NumberedParts returns the parts matching prefix+N+suffix sorted by N,
// e.g. ppt/slides/slide1.xml, slide2.xml, slide10.xml.
func NumberedParts(reader *zip.Reader, prefix, suffix string) []string {
	type part struct {
		name string
		n    int
	}
	var parts []part
	for _, file := range reader.File {
		if !strings.HasPrefix(file.Name, prefix) || !strings.HasSuffix(file.Name, suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file.Name, prefix), suffix))
		if err != nil {
			continue
		}
		parts = append(parts, part{file.Name, n})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].n < parts[j].n })

	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.name
	}
	return names
}
