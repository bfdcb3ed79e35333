// Package utils provides general-purpose helpers used across the
// application: type-safe context keys, JWT session token generation and
// validation, and operation identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
var UserIDCtxKey = contextKey("userID")

// OperationIDCtxKey is the key used to store the per-operation trace
// identifier attached by the UI before each service call.
var OperationIDCtxKey = contextKey("operationID")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetOperationIDFromContext retrieves the operation trace identifier from
// the context, or "" when none was attached.
func GetOperationIDFromContext(ctx context.Context) string {
	operationID, _ := ctx.Value(OperationIDCtxKey).(string)
	return operationID
}
