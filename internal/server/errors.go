package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apikeydomain "github.com/lugspot/lugspot/internal/apikey/domain"
	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
	locationdomain "github.com/lugspot/lugspot/internal/location/domain"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
	quotadomain "github.com/lugspot/lugspot/internal/quota/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
	storageunitdomain "github.com/lugspot/lugspot/internal/storageunit/domain"
	tenantdomain "github.com/lugspot/lugspot/internal/tenant/domain"
	ticketdomain "github.com/lugspot/lugspot/internal/ticket/domain"
	widgetdomain "github.com/lugspot/lugspot/internal/widget/domain"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrBadRequest   = errors.New("invalid request payload")
)

func invalidRequestError() error { return ErrBadRequest }

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AbortWithError maps a domain error to the HTTP error envelope
// {"error": {"code", "message"}} and aborts the request.
func AbortWithError(c *gin.Context, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internals stay in the logs, not in the response body.
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, paymentdomain.ErrInvalidSignature),
		errors.Is(err, widgetdomain.ErrWidgetKeyNotFound),
		errors.Is(err, widgetdomain.ErrWidgetKeyInactive):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"

	case errors.Is(err, quotadomain.ErrLocationQuotaExceeded),
		errors.Is(err, quotadomain.ErrStorageUnitQuotaExceeded),
		errors.Is(err, quotadomain.ErrWidgetQuotaExceeded):
		return http.StatusTooManyRequests, "quota_exceeded"

	case errors.Is(err, tenantdomain.ErrTenantNotFound),
		errors.Is(err, apikeydomain.ErrKeyNotFound),
		errors.Is(err, locationdomain.ErrLocationNotFound),
		errors.Is(err, storageunitdomain.ErrStorageUnitNotFound),
		errors.Is(err, pricingdomain.ErrRuleNotFound),
		errors.Is(err, reservationdomain.ErrReservationNotFound),
		errors.Is(err, ticketdomain.ErrTicketNotFound),
		errors.Is(err, paymentdomain.ErrProviderNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, tenantdomain.ErrSlugTaken):
		return http.StatusConflict, "conflict"

	case errors.Is(err, reservationdomain.ErrInvalidTransition),
		errors.Is(err, ticketdomain.ErrTicketClosed),
		errors.Is(err, quotadomain.ErrQuotaDisabled):
		return http.StatusConflict, "invalid_state"

	// Missing rate configuration is a server-side gap, not a caller fault:
	// the request is fine, the rate card is not.
	case errors.Is(err, pricingdomain.ErrNoPricingRule):
		return http.StatusBadGateway, "no_pricing_rule"

	case errors.Is(err, assistantdomain.ErrAssistantDisabled),
		errors.Is(err, assistantdomain.ErrNoProviderAvailable):
		return http.StatusServiceUnavailable, "assistant_unavailable"

	case isValidationError(err):
		return http.StatusBadRequest, "invalid_request"
	}

	return http.StatusInternalServerError, "internal"
}

func isValidationError(err error) bool {
	validation := []error{
		ErrBadRequest,
		tenantdomain.ErrInvalidName,
		tenantdomain.ErrInvalidSlug,
		apikeydomain.ErrInvalidName,
		locationdomain.ErrInvalidName,
		locationdomain.ErrInvalidTimezone,
		locationdomain.ErrInvalidCapacity,
		storageunitdomain.ErrInvalidName,
		storageunitdomain.ErrInvalidSizeClass,
		storageunitdomain.ErrInvalidCapacity,
		storageunitdomain.ErrLocationMismatch,
		pricingdomain.ErrInvalidInterval,
		pricingdomain.ErrInvalidBaggageCount,
		pricingdomain.ErrInvalidScope,
		pricingdomain.ErrInvalidPricingType,
		pricingdomain.ErrInvalidCurrency,
		pricingdomain.ErrInvalidRate,
		pricingdomain.ErrInvalidReference,
		reservationdomain.ErrInvalidGuest,
		reservationdomain.ErrInvalidWindow,
		reservationdomain.ErrInvalidBaggageCount,
		reservationdomain.ErrLocationMismatch,
		reservationdomain.ErrStorageMismatch,
		ticketdomain.ErrInvalidSubject,
		ticketdomain.ErrInvalidBody,
		ticketdomain.ErrInvalidStatus,
		ticketdomain.ErrInvalidPriority,
		ticketdomain.ErrInvalidAuthor,
		widgetdomain.ErrInvalidLabel,
		assistantdomain.ErrEmptyConversation,
		assistantdomain.ErrInvalidRole,
		paymentdomain.ErrInvalidProvider,
		paymentdomain.ErrInvalidPayload,
		paymentdomain.ErrInvalidEvent,
		paymentdomain.ErrMissingReference,
	}
	for _, candidate := range validation {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
