package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidForm      = "INVALID_FORM"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInvalidJokeID    = "INVALID_JOKE_ID"
	CodeRateLimited      = "RATE_LIMITED"
)
