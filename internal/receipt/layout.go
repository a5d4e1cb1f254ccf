package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Section names for the two physical copies printed on one page.
const (
	SectionOriginal = "original"
	SectionCopy     = "copy"
)

// sectionOrder fixes draw order so identical input produces identical
// output bytes.
var sectionOrder = []string{SectionOriginal, SectionCopy}

// Anchor positions one text field: X and Y in millimeters from the
// page's bottom-left corner, Size in points.
type Anchor struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// SectionLayout maps field keys to anchors within one section.
type SectionLayout map[string]Anchor

// Layout maps section names to their field anchors. Field keys with no
// matching formatted field are skipped at draw time, not rejected.
type Layout map[string]SectionLayout

// DefaultLayout returns the built-in coordinate table for the stock
// receipt template.
func DefaultLayout() Layout {
	return Layout{
		SectionOriginal: {
			"name":        {X: 20, Y: 240, Size: 14},
			"amount":      {X: 90, Y: 220, Size: 16},
			"description": {X: 73, Y: 211.2, Size: 11},
			"date":        {X: 145, Y: 273.5, Size: 11},
			"breakdown":   {X: 58, Y: 178.3, Size: 11},
			"tax":         {X: 58, Y: 172, Size: 11},
		},
		SectionCopy: {
			"name":        {X: 20, Y: 105, Size: 14},
			"amount":      {X: 90, Y: 87, Size: 16},
			"description": {X: 73, Y: 76.5, Size: 11},
			"date":        {X: 145, Y: 139, Size: 11},
			"breakdown":   {X: 58, Y: 43.5, Size: 11},
			"tax":         {X: 58, Y: 37.5, Size: 11},
		},
	}
}

// LoadLayout reads a layout override from a JSON file.
func LoadLayout(path string) (Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var layout Layout
	if err := json.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("layout %s has no sections", path)
	}
	return layout, nil
}

// sections returns the layout's section names in draw order: the two
// known sections first, any extra sections after them sorted by name.
func (l Layout) sections() []string {
	out := make([]string, 0, len(l))
	seen := map[string]bool{}
	for _, name := range sectionOrder {
		if _, ok := l[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	extra := make([]string, 0)
	for name := range l {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// fieldKeys returns a section's field keys sorted for deterministic
// draw order.
func (s SectionLayout) fieldKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
