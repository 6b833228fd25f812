package core

import (
	"context"
	"encoding/json"
)

// ExecuteRequest is a tool invocation forwarded to an external executor.
type ExecuteRequest struct {
	Tool   string          `json:"tool"`
	Input  json.RawMessage `json:"input,omitempty"`
	UserID string          `json:"user_id,omitempty"`
}

// ExecuteResponse is the executor's reply to an ExecuteRequest.
type ExecuteResponse struct {
	Success        bool            `json:"success"`
	Data           json.RawMessage `json:"data,omitempty"`
	Error          string          `json:"error,omitempty"`
	ConfirmationID string          `json:"confirmation_id,omitempty"`
}

// ToolExecutor executes tools against an external service. Read tools go
// through Execute; tools with side effects go through ExecuteWrite and may
// return a pending confirmation instead of a result.
type ToolExecutor interface {
	Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error)
	ExecuteWrite(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error)
	Confirm(ctx context.Context, userID, confirmationID string) (*ExecuteResponse, error)
	Cancel(ctx context.Context, userID, confirmationID string) error
}
