package portfolio

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTurnInProgress is returned by Client.StreamChat when a previous turn
// is still streaming on the same client.
var ErrTurnInProgress = errors.New("portfolio: a chat turn is already in progress")

// APIError is a non-success response from the portfolio API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portfolio: API error %d: %s", e.Status, e.Message)
}

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests
}

// IsUnavailable reports whether err indicates the AI service cannot serve
// right now (credits exhausted or upstream failure).
func IsUnavailable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusPaymentRequired || apiErr.Status >= 500
}
