package registry

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrToolNotFound    = errors.New("tool not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrExecutionFailed = errors.New("tool execution failed")
	ErrLoaderNotFound  = errors.New("loader source not found")
)

// JSON-RPC 2.0 error codes, plus server-defined codes in the -32000 range.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
	ErrCodeToolNotFound   = -32001
	ErrCodeToolExecFailed = -32002
)
