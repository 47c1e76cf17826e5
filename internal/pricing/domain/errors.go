package domain

import "errors"

var (
	// ErrNoPricingRule means no rule matched any scope bucket, including the
	// global fallback. Configuration gap, not a transient failure.
	ErrNoPricingRule = errors.New("no pricing rule matches the request context")

	// ErrInvalidInterval is returned when end <= start.
	ErrInvalidInterval = errors.New("reservation end must be after start")

	// ErrUnsupportedPricingType guards against corrupted rule rows. Should be
	// unreachable given write-path validation.
	ErrUnsupportedPricingType = errors.New("unsupported pricing type")

	ErrInvalidBaggageCount = errors.New("baggage count must be at least 1")

	ErrRuleNotFound       = errors.New("pricing rule not found")
	ErrInvalidScope       = errors.New("invalid pricing rule scope")
	ErrInvalidPricingType = errors.New("invalid pricing type")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter ISO code")
	ErrInvalidRate        = errors.New("rates must be non-negative")
	ErrInvalidReference   = errors.New("scope and location/storage reference are inconsistent")
)
