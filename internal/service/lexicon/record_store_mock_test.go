package lexicon

import (
	"context"
	"sync"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

var _ recordStore = &recordStoreMock{}

type recordStoreMock struct {
	LoadFunc func(ctx context.Context) ([]domain.LexicalRecord, error)
	SaveFunc func(ctx context.Context, records []domain.LexicalRecord) error

	calls struct {
		Load []struct {
			Ctx context.Context
		}
		Save []struct {
			Ctx     context.Context
			Records []domain.LexicalRecord
		}
	}
	lockLoad sync.RWMutex
	lockSave sync.RWMutex
}

func (mock *recordStoreMock) Load(ctx context.Context) ([]domain.LexicalRecord, error) {
	if mock.LoadFunc == nil {
		panic("recordStoreMock.LoadFunc: method is nil but recordStore.Load was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx)
}

func (mock *recordStoreMock) LoadCalls() []struct {
	Ctx context.Context
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *recordStoreMock) Save(ctx context.Context, records []domain.LexicalRecord) error {
	if mock.SaveFunc == nil {
		panic("recordStoreMock.SaveFunc: method is nil but recordStore.Save was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Records []domain.LexicalRecord
	}{Ctx: ctx, Records: records}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, records)
}

func (mock *recordStoreMock) SaveCalls() []struct {
	Ctx     context.Context
	Records []domain.LexicalRecord
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
