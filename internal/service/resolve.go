package service

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lachho/devsoc/internal/catalogue"
)

// similarity returns a 0.0–1.0 confidence score between two strings using
// Levenshtein distance: 1.0 - distance/max(len(a), len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Suggest returns the registered name closest to name, compared
// case-insensitively, when it scores at or above the configured threshold.
// If kinds is non-empty only entries of those kinds are considered. An exact
// match is never suggested.
func (s *Service) Suggest(ctx context.Context, name string, kinds ...catalogue.Kind) (string, bool) {
	target := strings.ToLower(name)

	best := ""
	bestScore := -1.0
	for _, e := range s.store.List(ctx) {
		if e.Name == name || !kindAllowed(e.Kind, kinds) {
			continue
		}
		if score := similarity(target, strings.ToLower(e.Name)); score > bestScore {
			bestScore = score
			best = e.Name
		}
	}

	if best == "" || bestScore < s.threshold {
		return "", false
	}
	return best, true
}

func kindAllowed(k catalogue.Kind, kinds []catalogue.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
