// Package prompt renders conversations into the raw prompt templates of model families.
package prompt

import (
	"fmt"
	"strings"

	"github.com/davidbz/ollamagen/internal/domain"
)

const (
	FamilyBracketInstruction = "bracket-instruction"
	FamilyHeaderTagged       = "header-tagged"
)

// NewFamily resolves a configured family name (or a model alias) to its formatter.
func NewFamily(name string) (domain.ModelFamily, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FamilyBracketInstruction, "bracket", "mistral":
		return BracketInstruction{}, nil
	case FamilyHeaderTagged, "header", "llama3", "llama3.1":
		return HeaderTagged{}, nil
	default:
		return nil, fmt.Errorf("unknown model family: %q", name)
	}
}
