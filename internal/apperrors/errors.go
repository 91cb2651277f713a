package apperrors

// ErrorCode identifies the reason a request to this service failed.
// Failures reported by GREEN-API are not errors of this service: they are returned in the proxy response envelope.
type ErrorCode string

const (
	ErrCodeInternalError      ErrorCode = "internal_error"
	ErrCodeMalformedBody      ErrorCode = "malformed_body"
	ErrCodeRateLimitExceeded  ErrorCode = "rate_limit_exceeded"
	ErrCodeRequestTooLarge    ErrorCode = "request_too_large"
	ErrCodeResourceNotFound   ErrorCode = "resource_not_found"
	ErrCodeUpstreamConnection ErrorCode = "upstream_connection_error"
)
