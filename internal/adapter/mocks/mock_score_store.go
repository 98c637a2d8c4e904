package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	adapter "mutscore.dev/pkg/mutscore/internal/adapter"
	model "mutscore.dev/pkg/mutscore/internal/model"
)

// MockScoreStore is a mock type for the ScoreStore type.
type MockScoreStore struct {
	mock.Mock
}

// Close provides a mock function with given fields:
func (_m *MockScoreStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListScores provides a mock function with given fields: ctx, filter
func (_m *MockScoreStore) ListScores(ctx context.Context, filter adapter.ScoreFilter) ([]model.ScoreRecord, error) {
	ret := _m.Called(ctx, filter)

	if len(ret) == 0 {
		panic("no return value specified for ListScores")
	}

	var r0 []model.ScoreRecord
	var r1 error

	if rf, ok := ret.Get(0).(func(context.Context, adapter.ScoreFilter) ([]model.ScoreRecord, error)); ok {
		return rf(ctx, filter)
	}

	if rf, ok := ret.Get(0).(func(context.Context, adapter.ScoreFilter) []model.ScoreRecord); ok {
		r0 = rf(ctx, filter)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.ScoreRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, adapter.ScoreFilter) error); ok {
		r1 = rf(ctx, filter)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SaveScore provides a mock function with given fields: ctx, record
func (_m *MockScoreStore) SaveScore(ctx context.Context, record model.ScoreRecord) error {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for SaveScore")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.ScoreRecord) error); ok {
		r0 = rf(ctx, record)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockScoreStore creates a new instance of MockScoreStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockScoreStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockScoreStore {
	mock := &MockScoreStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
