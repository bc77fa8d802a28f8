// Package service contains the application use cases: account signup, login
// and profile management, and owner-scoped task management.
//
// Services depend only on the store interfaces and the auth primitives.
// Expected failures surface as sentinel errors (ErrInvalidCredentials,
// store.ErrTaskNotFound, domain.ErrValidation, ...) that the API layer maps
// to status codes; anything else is wrapped in a ServiceError.
package service
