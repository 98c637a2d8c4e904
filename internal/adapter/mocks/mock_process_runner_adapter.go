package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	adapter "mutscore.dev/pkg/mutscore/internal/adapter"
	model "mutscore.dev/pkg/mutscore/internal/model"
)

// MockProcessRunnerAdapter is a mock type for the ProcessRunnerAdapter type.
type MockProcessRunnerAdapter struct {
	mock.Mock
}

// LookPath provides a mock function with given fields: name
func (_m *MockProcessRunnerAdapter) LookPath(name string) (string, error) {
	ret := _m.Called(name)

	if len(ret) == 0 {
		panic("no return value specified for LookPath")
	}

	var r0 string
	var r1 error

	if rf, ok := ret.Get(0).(func(string) (string, error)); ok {
		return rf(name)
	}

	if rf, ok := ret.Get(0).(func(string) string); ok {
		r0 = rf(name)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(string) error); ok {
		r1 = rf(name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RunScript provides a mock function with given fields: ctx, dir, script, opts
func (_m *MockProcessRunnerAdapter) RunScript(ctx context.Context, dir model.Path, script model.Path, opts adapter.RunOptions) (adapter.RunResult, error) {
	ret := _m.Called(ctx, dir, script, opts)

	if len(ret) == 0 {
		panic("no return value specified for RunScript")
	}

	var r0 adapter.RunResult
	var r1 error

	if rf, ok := ret.Get(0).(func(context.Context, model.Path, model.Path, adapter.RunOptions) (adapter.RunResult, error)); ok {
		return rf(ctx, dir, script, opts)
	}

	if rf, ok := ret.Get(0).(func(context.Context, model.Path, model.Path, adapter.RunOptions) adapter.RunResult); ok {
		r0 = rf(ctx, dir, script, opts)
	} else {
		r0 = ret.Get(0).(adapter.RunResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.Path, model.Path, adapter.RunOptions) error); ok {
		r1 = rf(ctx, dir, script, opts)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RunDefects4J provides a mock function with given fields: ctx, dir, opts, command, args
func (_m *MockProcessRunnerAdapter) RunDefects4J(ctx context.Context, dir model.Path, opts adapter.RunOptions, command string, args ...string) (adapter.RunResult, error) {
	_va := make([]interface{}, len(args))
	for _i := range args {
		_va[_i] = args[_i]
	}

	var _ca []interface{}
	_ca = append(_ca, ctx, dir, opts, command)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	if len(ret) == 0 {
		panic("no return value specified for RunDefects4J")
	}

	if rf, ok := ret.Get(0).(func(context.Context, model.Path, adapter.RunOptions, string, ...string) (adapter.RunResult, error)); ok {
		return rf(ctx, dir, opts, command, args...)
	}

	var r0 adapter.RunResult
	if rf, ok := ret.Get(0).(func(context.Context, model.Path, adapter.RunOptions, string, ...string) adapter.RunResult); ok {
		r0 = rf(ctx, dir, opts, command, args...)
	} else {
		r0 = ret.Get(0).(adapter.RunResult)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.Path, adapter.RunOptions, string, ...string) error); ok {
		r1 = rf(ctx, dir, opts, command, args...)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockProcessRunnerAdapter creates a new instance of MockProcessRunnerAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockProcessRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProcessRunnerAdapter {
	mock := &MockProcessRunnerAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
