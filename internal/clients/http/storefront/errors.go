package storefront

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// ErrTransport marks failures to reach the API at all (DNS, refused connection, timeouts).
var ErrTransport = sharederrors.ErrUnavailable

// APIError is returned for every non-2xx response.
type APIError = sharederrors.HTTPError

const maxErrorBody = 64 << 10

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: res.StatusCode}
	if len(raw) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = firstNonEmpty(body.Message, body.Error)
	}
	if apiErr.Message == "" {
		var problem sharederrors.ProblemDetail
		if err := json.Unmarshal(raw, &problem); err == nil {
			apiErr.Message = firstNonEmpty(problem.Detail, problem.Title)
		}
	}
	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
