// Package translator does best-effort phrase and word substitution through
// the lexicon. Anything the lexicon does not know is passed through.
package translator

import (
	"strings"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

type dictionary interface {
	Lookup(text string, dir domain.Direction) (string, bool)
	LookupWord(word string, dir domain.Direction) (string, bool)
}

// Service translates free text between Soussou and French.
type Service struct {
	dict dictionary
}

// NewService creates a translator reading from dict.
func NewService(dict dictionary) *Service {
	return &Service{dict: dict}
}

// Translate returns text translated in the given direction.
//
// A full-input match wins. Otherwise the text is split on '.', '!' and '?'
// with each mark kept as its own segment. Every other segment is trimmed,
// skipped when empty, and translated as a phrase or, failing that, word by
// word. Results are concatenated without separators.
func (s *Service) Translate(text string, dir domain.Direction) string {
	if v, ok := s.dict.Lookup(text, dir); ok {
		return v
	}

	var b strings.Builder
	for _, seg := range splitSegments(text) {
		if isTerminal(seg) {
			b.WriteString(seg)
			continue
		}
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if v, ok := s.dict.Lookup(seg, dir); ok {
			b.WriteString(v)
			continue
		}
		b.WriteString(s.translateWords(seg, dir))
	}
	return b.String()
}

func (s *Service) translateWords(segment string, dir domain.Direction) string {
	words := strings.Fields(segment)
	for i, w := range words {
		if v, ok := s.dict.LookupWord(w, dir); ok {
			words[i] = v
		}
	}
	return strings.Join(words, " ")
}

// splitSegments splits on terminal punctuation, keeping every mark as a
// separate element. Text between two adjacent marks yields an empty element.
func splitSegments(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			out = append(out, text[start:i], text[i:i+1])
			start = i + 1
		}
	}
	return append(out, text[start:])
}

func isTerminal(seg string) bool {
	return seg == "." || seg == "!" || seg == "?"
}
