package assistant

import (
	"context"
	"sync"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

var _ gateway = &gatewayMock{}

type gatewayMock struct {
	CompleteFunc func(ctx context.Context, req domain.CompletionRequest) (string, error)

	calls struct {
		Complete []struct {
			Ctx context.Context
			Req domain.CompletionRequest
		}
	}
	lockComplete sync.RWMutex
}

func (mock *gatewayMock) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if mock.CompleteFunc == nil {
		panic("gatewayMock.CompleteFunc: method is nil but gateway.Complete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.CompletionRequest
	}{Ctx: ctx, Req: req}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, req)
}

func (mock *gatewayMock) CompleteCalls() []struct {
	Ctx context.Context
	Req domain.CompletionRequest
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

var _ lexiconWriter = &lexiconWriterMock{}

type lexiconWriterMock struct {
	ContributeFunc func(ctx context.Context, soussou string, french string) error

	calls struct {
		Contribute []struct {
			Ctx     context.Context
			Soussou string
			French  string
		}
	}
	lockContribute sync.RWMutex
}

func (mock *lexiconWriterMock) Contribute(ctx context.Context, soussou string, french string) error {
	if mock.ContributeFunc == nil {
		panic("lexiconWriterMock.ContributeFunc: method is nil but lexiconWriter.Contribute was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Soussou string
		French  string
	}{Ctx: ctx, Soussou: soussou, French: french}
	mock.lockContribute.Lock()
	mock.calls.Contribute = append(mock.calls.Contribute, callInfo)
	mock.lockContribute.Unlock()
	return mock.ContributeFunc(ctx, soussou, french)
}

func (mock *lexiconWriterMock) ContributeCalls() []struct {
	Ctx     context.Context
	Soussou string
	French  string
} {
	mock.lockContribute.RLock()
	calls := mock.calls.Contribute
	mock.lockContribute.RUnlock()
	return calls
}
