package generation

import (
	"regexp"
	"strings"
)

var pascalBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// BrandStyler varies PascalCase brand names the model tends to return, so "AquaTech"
// becomes "Aqua Tech", "Aquatech" or stays as it is.
type BrandStyler struct {
	random *Random
}

// NewBrandStyler creates a styler drawing from random.
func NewBrandStyler(random *Random) *BrandStyler {
	return &BrandStyler{random: random}
}

// Style rewrites every lower/upper case boundary in name independently.
func (s *BrandStyler) Style(name string) string {
	return pascalBoundary.ReplaceAllStringFunc(name, func(boundary string) string {
		lower, upper := boundary[:1], boundary[1:]

		switch s.random.IntN(3) {
		case 0:
			return lower + " " + upper
		case 1:
			return lower + strings.ToLower(upper)
		default:
			return boundary
		}
	})
}

// StyleAll styles every name in brands.
func (s *BrandStyler) StyleAll(brands []string) []string {
	styled := make([]string, len(brands))
	for i, b := range brands {
		styled[i] = s.Style(strings.TrimSpace(b))
	}
	return styled
}
