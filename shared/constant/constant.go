package constant

import (
	"time"
)

const (
	DateFormat = time.RFC3339
)

const (
	RequestParamID        = "id"
	RequestParamQuery     = "query"
	RequestParamStart     = "start"
	RequestParamEnd       = "end"
	RequestParamGuests    = "guests"
	RequestParamCustomer  = "customer"
	RequestParamRoom      = "room"
	RequestParamBookingID = "bookingId"
	RequestParamInvoiceID = "invoiceId"
	RequestParamStatus    = "status"
	RequestParamStartDate = "startDate"
	RequestParamEndDate   = "endDate"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"

	OtelBackendPathAttribute = "backend.path"
)

const (
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
	Asterix = "*"
	Empty   = ""
)
