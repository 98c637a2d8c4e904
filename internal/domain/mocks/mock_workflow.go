package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	domain "mutscore.dev/pkg/mutscore/internal/domain"
)

// MockWorkflow is a mock type for the Workflow type.
type MockWorkflow struct {
	mock.Mock
}

// Backup provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Backup(ctx context.Context, args domain.CheckoutArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Backup")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.CheckoutArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Bulk provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Bulk(ctx context.Context, args domain.BulkArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Bulk")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.BulkArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Compare provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Compare(ctx context.Context, args domain.CompareArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Compare")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.CompareArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Coverage provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Coverage(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Coverage")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MutationScores provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) MutationScores(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for MutationScores")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Mutants provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Mutants(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Mutants")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Restore provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Restore(ctx context.Context, args domain.CheckoutArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Restore")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.CheckoutArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// RunTools provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) RunTools(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for RunTools")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Summary provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Summary(ctx context.Context, args domain.SummaryArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Summary")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.SummaryArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Tools provides a mock function with given fields: ctx
func (_m *MockWorkflow) Tools(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Tools")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// View provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for View")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ViewArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
