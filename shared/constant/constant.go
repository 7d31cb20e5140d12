package constant

import "time"

type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)

const (
	RoleSuperAdmin   = "superadmin"
	RoleAdmin        = "admin"
	RoleNightAuditor = "night_auditor"
	RoleFrontDesk    = "front_desk"

	// SystemOperator is recorded as the operator when no authenticated user is present.
	SystemOperator = "system"
)

// Query and path parameters.
const (
	RequestParamID       = "id"
	RequestParamPage     = "page"
	RequestParamPageSize = "page_size"
	RequestParamStatus   = "status"
	RequestParamAsOf     = "as_of"
	RequestParamDate     = "date"

	DefaultValuePage = 1
)

const (
	// DateFormat renders instants. Calendar dates use time.DateOnly.
	DateFormat = time.RFC3339
	// MoneyDecimals is the scale of every amount the API returns.
	MoneyDecimals = 2

	PqErrorCodeUniqueViolation = "23505"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderAPIKey             = "X-API-Key"

	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
