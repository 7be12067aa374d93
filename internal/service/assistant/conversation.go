package assistant

import (
	"context"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Begin returns a copy of history with (question, PendingAnswer) appended.
// It is the first half of a turn and never blocks.
func Begin(history domain.History, question string) domain.History {
	out := make(domain.History, len(history), len(history)+1)
	copy(out, history)
	return append(out, domain.Turn{Question: question, Answer: domain.PendingAnswer})
}

// Resolve answers question and returns a copy of history whose last turn
// carries the answer. An empty history is returned unchanged.
func (s *Service) Resolve(ctx context.Context, history domain.History, question string, lang domain.Language) domain.History {
	if len(history) == 0 {
		return history
	}
	answer := s.Answer(ctx, question, lang)

	out := history.Clone()
	out[len(out)-1].Answer = answer
	return out
}

// Submit runs both halves of a turn synchronously.
func (s *Service) Submit(ctx context.Context, question string, history domain.History, lang domain.Language) domain.History {
	return s.Resolve(ctx, Begin(history, question), question, lang)
}
