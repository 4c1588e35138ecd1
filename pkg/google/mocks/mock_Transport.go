// Package mocks provides test doubles for the google package.
package mocks

import (
	"context"

	google "github.com/sells-group/places-cli/pkg/google"
	mock "github.com/stretchr/testify/mock"
)

// MockTransport is a mock type for the Transport interface.
type MockTransport struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, url
func (_m *MockTransport) Get(ctx context.Context, url string) (*google.RawResponse, error) {
	ret := _m.Called(ctx, url)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *google.RawResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*google.RawResponse, error)); ok {
		return rf(ctx, url)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *google.RawResponse); ok {
		r0 = rf(ctx, url)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*google.RawResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, url)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockTransport creates a new instance of MockTransport.
func NewMockTransport(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransport {
	mock := &MockTransport{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
