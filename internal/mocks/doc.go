// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Two flavours are available. The Mock* types (MockUserStore, MockTaskStore,
// MockJWTService, MockPasswordVerifier) are hand-written fakes with
// in-memory state and optional Fn overrides, suitable for handler and router
// tests. UserStore and TaskStore are testify/mock types for tests that need to
// assert exact calls:
//
//	userStore := new(mocks.UserStore)
//	userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
package mocks
