package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/nene-backend/internal/domain"
	"github.com/heartmarshall/nene-backend/pkg/ctxutil"
)

// Sessions holds in-memory conversations and resolves their turns in the
// background. Turns of one session are answered strictly in submission
// order; different sessions proceed independently.
type Sessions struct {
	svc *Service
	log *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	wg sync.WaitGroup
}

type session struct {
	mu      sync.Mutex
	history domain.History
	// epoch changes on Clear so late answers do not land in a reset history.
	epoch int
	// tail is closed once the most recently enqueued turn is resolved.
	tail chan struct{}
}

// NewSessions creates an empty session registry backed by svc.
func NewSessions(log *slog.Logger, svc *Service) *Sessions {
	return &Sessions{
		svc:      svc,
		log:      log.With("service", "sessions"),
		sessions: make(map[uuid.UUID]*session),
	}
}

// Create starts a new empty conversation.
func (s *Sessions) Create() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &session{history: domain.History{}}
	s.mu.Unlock()
	return id
}

// Enqueue appends the placeholder turn and returns the history right away.
// The answer is filled in asynchronously once every earlier turn of the
// session is resolved. Model calls are not cancelled when ctx is.
func (s *Sessions) Enqueue(ctx context.Context, id uuid.UUID, question string, lang domain.Language) (domain.History, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.history = Begin(sess.history, question)
	idx := len(sess.history) - 1
	epoch := sess.epoch
	prev := sess.tail
	done := make(chan struct{})
	sess.tail = done
	snapshot := sess.history.Clone()
	sess.mu.Unlock()

	bg := ctxutil.WithSessionID(context.WithoutCancel(ctx), id)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)

		if prev != nil {
			<-prev
		}

		answer := s.svc.Answer(bg, question, lang)

		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.epoch != epoch || idx >= len(sess.history) || !sess.history[idx].IsPending() {
			s.log.DebugContext(bg, "dropping answer for cleared session",
				slog.String("session_id", id.String()),
			)
			return
		}
		sess.history[idx].Answer = answer
	}()

	return snapshot, nil
}

// History returns a snapshot of the session's turns.
func (s *Sessions) History(id uuid.UUID) (domain.History, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.history.Clone(), nil
}

// Clear empties the session's history. Turns still in flight are answered
// but their answers are discarded.
func (s *Sessions) Clear(id uuid.UUID) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.history = domain.History{}
	sess.epoch++
	sess.mu.Unlock()
	return nil
}

// Delete forgets the session.
func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Wait blocks until every enqueued turn is resolved or ctx is done.
func (s *Sessions) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sessions) get(id uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}
