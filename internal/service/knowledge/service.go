package knowledge

import (
	"github.com/heartmarshall/nene-backend/internal/content"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Service is the curated question table. Keys are exact Soussou questions.
// It is immutable after construction.
type Service struct {
	answers map[string]domain.Answer
}

// NewService indexes the curated answers by question. Later duplicates win.
func NewService(entries []content.CuratedAnswer) *Service {
	answers := make(map[string]domain.Answer, len(entries))
	for _, e := range entries {
		answers[e.Question] = e.Answer
	}
	return &Service{answers: answers}
}

// Answer returns the curated answer in lang when question is an exact key.
func (s *Service) Answer(question string, lang domain.Language) (string, bool) {
	a, ok := s.answers[question]
	if !ok {
		return "", false
	}
	return a.In(lang), true
}

// Has reports whether question is a curated key.
func (s *Service) Has(question string) bool {
	_, ok := s.answers[question]
	return ok
}

// Len returns the number of curated questions.
func (s *Service) Len() int { return len(s.answers) }
