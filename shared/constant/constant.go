package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID      = "id"
	RequestParamKeyword = "keyword"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

// Registration lifecycle statuses.
const (
	StatusBooked    = "BOOKED"
	StatusCancelled = "CANCELLED"
	StatusFinished  = "FINISHED"
)

// Half-day visit periods on a schedule.
const (
	TimeSlotMorning   = "AM"
	TimeSlotAfternoon = "PM"
)

// Visit start hours per time slot, in the application timezone.
const (
	VisitHourMorning   = 8
	VisitHourAfternoon = 14
)

// CancelCutoff is how long before the visit instant cancellation closes.
const CancelCutoff = time.Hour

// Registration number layout: RegNoPrefix + yyyyMMdd + 6-digit sequence.
const (
	RegNoPrefix     = "GH"
	RegNoDateLayout = "20060102"
	RegNoSeqDigits  = 6
)

// CreateMaxAttempts bounds the identifier-conflict retry loop in
// registration create.
const CreateMaxAttempts = 3

const (
	DateFormat     = time.RFC3339
	WorkDateFormat = "2006-01-02"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

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
)

const (
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
	Empty = ""
)
