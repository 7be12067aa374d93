package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

var _ chatService = &chatServiceMock{}

type chatServiceMock struct {
	SubmitFunc func(ctx context.Context, question string, history domain.History, lang domain.Language) domain.History

	calls struct {
		Submit []struct {
			Question string
			History  domain.History
			Lang     domain.Language
		}
	}
	lockSubmit sync.RWMutex
}

func (mock *chatServiceMock) Submit(ctx context.Context, question string, history domain.History, lang domain.Language) domain.History {
	if mock.SubmitFunc == nil {
		panic("chatServiceMock.SubmitFunc: method is nil but chatService.Submit was just called")
	}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, struct {
		Question string
		History  domain.History
		Lang     domain.Language
	}{Question: question, History: history, Lang: lang})
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, question, history, lang)
}

func (mock *chatServiceMock) SubmitCalls() []struct {
	Question string
	History  domain.History
	Lang     domain.Language
} {
	mock.lockSubmit.RLock()
	defer mock.lockSubmit.RUnlock()
	return mock.calls.Submit
}

var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	CreateFunc  func() uuid.UUID
	EnqueueFunc func(ctx context.Context, id uuid.UUID, question string, lang domain.Language) (domain.History, error)
	HistoryFunc func(id uuid.UUID) (domain.History, error)
	ClearFunc   func(id uuid.UUID) error
	DeleteFunc  func(id uuid.UUID) error

	calls struct {
		Enqueue []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Question string
			Lang     domain.Language
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *sessionStoreMock) Create() uuid.UUID {
	if mock.CreateFunc == nil {
		panic("sessionStoreMock.CreateFunc: method is nil but sessionStore.Create was just called")
	}
	return mock.CreateFunc()
}

func (mock *sessionStoreMock) Enqueue(ctx context.Context, id uuid.UUID, question string, lang domain.Language) (domain.History, error) {
	if mock.EnqueueFunc == nil {
		panic("sessionStoreMock.EnqueueFunc: method is nil but sessionStore.Enqueue was just called")
	}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, struct {
		Ctx      context.Context
		ID       uuid.UUID
		Question string
		Lang     domain.Language
	}{Ctx: ctx, ID: id, Question: question, Lang: lang})
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, id, question, lang)
}

func (mock *sessionStoreMock) EnqueueCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Question string
	Lang     domain.Language
} {
	mock.lockEnqueue.RLock()
	defer mock.lockEnqueue.RUnlock()
	return mock.calls.Enqueue
}

func (mock *sessionStoreMock) History(id uuid.UUID) (domain.History, error) {
	if mock.HistoryFunc == nil {
		panic("sessionStoreMock.HistoryFunc: method is nil but sessionStore.History was just called")
	}
	return mock.HistoryFunc(id)
}

func (mock *sessionStoreMock) Clear(id uuid.UUID) error {
	if mock.ClearFunc == nil {
		panic("sessionStoreMock.ClearFunc: method is nil but sessionStore.Clear was just called")
	}
	return mock.ClearFunc(id)
}

func (mock *sessionStoreMock) Delete(id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("sessionStoreMock.DeleteFunc: method is nil but sessionStore.Delete was just called")
	}
	return mock.DeleteFunc(id)
}

type contributorMock struct {
	ContributeFunc func(ctx context.Context, soussou, french string) (string, error)
}

func (m *contributorMock) Contribute(ctx context.Context, soussou, french string) (string, error) {
	return m.ContributeFunc(ctx, soussou, french)
}

// lookuperMock serves a fixed two-direction dictionary.
type lookuperMock map[domain.Direction]map[string]string

func (m lookuperMock) Lookup(text string, dir domain.Direction) (string, bool) {
	v, ok := m[dir][text]
	return v, ok
}

type standaloneTranslatorMock struct {
	TranslateStandaloneFunc func(text string, source, target domain.Language) string
}

func (m *standaloneTranslatorMock) TranslateStandalone(text string, source, target domain.Language) string {
	return m.TranslateStandaloneFunc(text, source, target)
}
