package lexicon

import (
	"strings"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Lookup is an exact, case-sensitive match of text in the given direction.
func (s *Service) Lookup(text string, dir domain.Direction) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.mapping(dir)[text]
	return v, ok
}

// LookupWord resolves a single word. Soussou words match exactly. French
// words are probed as written, then lowercased, then against the folded
// index so "merci" finds the entry stored as "Merci".
func (s *Service) LookupWord(word string, dir domain.Direction) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.mapping(dir)
	if v, ok := m[word]; ok {
		return v, true
	}
	if dir != domain.DirectionFrenchToSoussou {
		return "", false
	}
	if v, ok := m[strings.ToLower(word)]; ok {
		return v, true
	}
	v, ok := s.frFold[domain.FoldWord(word)]
	return v, ok
}

// mapping must be called with mu held.
func (s *Service) mapping(dir domain.Direction) map[string]string {
	if dir == domain.DirectionFrenchToSoussou {
		return s.frToSous
	}
	return s.sousToFr
}
