package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != 42 {
		t.Errorf("expected userID=42, got %d", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if userID != 0 {
		t.Errorf("expected zero userID, got %d", userID)
	}
}

func TestGetOperationIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), OperationIDCtxKey, "op-123")

	if got := GetOperationIDFromContext(ctx); got != "op-123" {
		t.Errorf("expected 'op-123', got '%s'", got)
	}
	if got := GetOperationIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty operation ID, got '%s'", got)
	}
}
