package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	controller "mutscore.dev/pkg/mutscore/internal/controller"
	model "mutscore.dev/pkg/mutscore/internal/model"
)

// MockUI is a mock type for the UI type.
type MockUI struct {
	mock.Mock
}

// Close provides a mock function with given fields: ctx
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayDiffs provides a mock function with given fields: ctx, diffs
func (_m *MockUI) DisplayDiffs(ctx context.Context, diffs []model.ReportDiff) error {
	ret := _m.Called(ctx, diffs)

	if len(ret) == 0 {
		panic("no return value specified for DisplayDiffs")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []model.ReportDiff) error); ok {
		r0 = rf(ctx, diffs)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DisplayOutcomes provides a mock function with given fields: ctx, outcomes
func (_m *MockUI) DisplayOutcomes(ctx context.Context, outcomes []model.Outcome) error {
	ret := _m.Called(ctx, outcomes)

	if len(ret) == 0 {
		panic("no return value specified for DisplayOutcomes")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []model.Outcome) error); ok {
		r0 = rf(ctx, outcomes)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DisplayRunInfo provides a mock function with given fields: ctx, info
func (_m *MockUI) DisplayRunInfo(ctx context.Context, info controller.RunInfo) {
	_m.Called(ctx, info)
}

// DisplayScores provides a mock function with given fields: ctx, records
func (_m *MockUI) DisplayScores(ctx context.Context, records []model.ScoreRecord) error {
	ret := _m.Called(ctx, records)

	if len(ret) == 0 {
		panic("no return value specified for DisplayScores")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []model.ScoreRecord) error); ok {
		r0 = rf(ctx, records)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DisplaySummary provides a mock function with given fields: ctx, summaries, verbose
func (_m *MockUI) DisplaySummary(ctx context.Context, summaries []model.ReportSummary, verbose bool) error {
	ret := _m.Called(ctx, summaries, verbose)

	if len(ret) == 0 {
		panic("no return value specified for DisplaySummary")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []model.ReportSummary, bool) error); ok {
		r0 = rf(ctx, summaries, verbose)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DisplayToolCollected provides a mock function with given fields: ctx, checkout, kind, label, dir
func (_m *MockUI) DisplayToolCollected(ctx context.Context, checkout model.Path, kind model.ToolKind, label string, dir model.Path) {
	_m.Called(ctx, checkout, kind, label, dir)
}

// DisplayToolFailed provides a mock function with given fields: ctx, checkout, kind, label, err
func (_m *MockUI) DisplayToolFailed(ctx context.Context, checkout model.Path, kind model.ToolKind, label string, err error) {
	_m.Called(ctx, checkout, kind, label, err)
}

// DisplayToolScore provides a mock function with given fields: ctx, checkout, kind, label, report
func (_m *MockUI) DisplayToolScore(ctx context.Context, checkout model.Path, kind model.ToolKind, label string, report model.MutationReport) {
	_m.Called(ctx, checkout, kind, label, report)
}

// DisplayToolStarted provides a mock function with given fields: ctx, checkout, kind, label
func (_m *MockUI) DisplayToolStarted(ctx context.Context, checkout model.Path, kind model.ToolKind, label string) {
	_m.Called(ctx, checkout, kind, label)
}

// DisplayTools provides a mock function with given fields: ctx, tools
func (_m *MockUI) DisplayTools(ctx context.Context, tools []controller.ToolInfo) error {
	ret := _m.Called(ctx, tools)

	if len(ret) == 0 {
		panic("no return value specified for DisplayTools")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []controller.ToolInfo) error); ok {
		r0 = rf(ctx, tools)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Wait provides a mock function with given fields: ctx
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// Start provides a mock function with given fields: ctx, options
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	_va := make([]interface{}, len(options))
	for _i := range options {
		_va[_i] = options[_i]
	}

	var _ca []interface{}
	_ca = append(_ca, ctx)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	if len(ret) == 0 {
		panic("no return value specified for Start")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, ...controller.StartOption) error); ok {
		r0 = rf(ctx, options...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
