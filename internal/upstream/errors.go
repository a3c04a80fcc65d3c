package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized means the backend rejected the session (401/403). The
// session has already been invalidated by the time callers see this.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a business error reported by the dispatch backend, e.g.
// "driver already on an order". The message is meant for the operator.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("dispatch api: status %d", e.Status)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
