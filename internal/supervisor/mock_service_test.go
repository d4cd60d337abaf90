// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService implements suture.Service and fails a configured number of
// times before running until cancelled.
type mockService struct {
	name       string
	startCount atomic.Int32
	failsLeft  atomic.Int32
}

func newMockService(name string, fails int32) *mockService {
	m := &mockService{name: name}
	m.failsLeft.Store(fails)
	return m
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	if m.failsLeft.Add(-1) >= 0 {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) StartCount() int32 { return m.startCount.Load() }

func (m *mockService) String() string { return m.name }
