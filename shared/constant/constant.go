package constant

import (
	"time"
)

// Actors recorded in created_by and modified_by when no user is signed in.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

const (
	RequestParamID     = "id"
	RequestParamEmail  = "email"
	RequestParamSearch = "search"
	RequestMaxMemory   = 10 << 20 // 10 MB
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const PqErrorCodeUniqueViolation = "23505"

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
	HoursPerDay    = 24
)

const (
	DBDriverPostgres = "postgres"
	DBDriverMongo    = "mongo"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
	FormImage       = "image"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

// Cache keys. Prefixes are cleared with a trailing Asterix.
const (
	CacheKeyDashboardStats = "dashboard:stats"
	CacheKeyBookingPrefix  = "booking:"
	CacheKeyRoomPrefix     = "room:"
)

const (
	Asterix = "*"
	Empty   = ""
)
