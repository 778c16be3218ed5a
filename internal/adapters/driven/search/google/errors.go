package google

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// Quota reasons reported with HTTP 403 when the daily allowance is spent.
var quotaReasons = map[string]struct{}{
	"rateLimitExceeded":     {},
	"userRateLimitExceeded": {},
	"dailyLimitExceeded":    {},
	"quotaExceeded":         {},
}

// IsRateLimited returns true if the error indicates rate limiting or an exhausted quota.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	if gerr.Code == http.StatusForbidden {
		for _, item := range gerr.Errors {
			if _, ok := quotaReasons[item.Reason]; ok {
				return true
			}
		}
	}
	return false
}

// IsUnauthorized returns true if the API key was rejected.
func IsUnauthorized(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized ||
			(gerr.Code == http.StatusBadRequest && hasReason(gerr, "keyInvalid"))
	}
	return false
}

// WrapError converts a Custom Search failure to a domain search error.
// Context cancellation from the caller is returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	if IsRateLimited(err) {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: api key rejected (status %d)", domain.ErrProviderResponse, gerr.Code)
		}
		return fmt.Errorf("%w: status %d: %s", domain.ErrProviderResponse, gerr.Code, gerr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	return fmt.Errorf("%w: %w", domain.ErrProviderResponse, err)
}

func hasReason(gerr *googleapi.Error, reason string) bool {
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}
