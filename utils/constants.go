// File: utils/constants.go
package utils

// DraftCachePrefix is the prefix used for Redis draft session keys.
const DraftCachePrefix = "scheduleDraft:"

// SubmitLockPrefix is the prefix used for per-draft submission locks.
const SubmitLockPrefix = "scheduleDraftSubmit:"

// Context keys set by the auth middleware.
const (
	ContextUserID    = "userID"
	ContextAuthToken = "authToken"
	ContextLogger    = "logger"
)

// RequestIDHeader carries the request id to and from clients.
const RequestIDHeader = "X-Request-ID"
