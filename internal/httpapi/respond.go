package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nfalab/machina/pkg/errors"
)

// maxBodySize bounds request bodies. Transition maps are small; anything
// near this limit is not an automaton.
const maxBodySize = 1 << 20

// errorBody is the wire envelope for failed requests.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: errorDetail{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps error codes onto HTTP statuses. Validation problems are
// the client's fault, missing resources are 404s, and converter trouble
// surfaces as a gateway failure so clients can tell local errors from
// remote ones.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound),
		errors.Is(err, errors.ErrCodeFileNotFound),
		errors.Is(err, errors.ErrCodeSessionNotFound),
		errors.Is(err, errors.ErrCodeDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeRemoteConversion),
		errors.Is(err, errors.ErrCodeNetwork):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	case errors.IsValidation(err),
		errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFormat),
		errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields
// so typos surface as errors instead of silently ignored settings.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
