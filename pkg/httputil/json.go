package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

// MaxBodySize bounds request bodies read by DecodeJSON.
const MaxBodySize = 1 << 20

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error to an HTTP status by its pixelgrid code.
func StatusFor(err error) int {
	switch code := pgerrors.GetCode(err); {
	case pgerrors.IsInvalid(err):
		return http.StatusBadRequest
	case code == pgerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == pgerrors.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case code == pgerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == pgerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorBody with the status from StatusFor.
// Errors without a code are reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, err error) {
	code := pgerrors.GetCode(err)
	if code == "" {
		code = pgerrors.ErrCodeInternal
	}
	WriteJSON(w, StatusFor(err), ErrorBody{
		Code:    string(code),
		Message: pgerrors.UserMessage(err),
	})
}

// DecodeJSON reads r's body into v. Unknown fields are rejected so typos in
// settings keys surface as errors.
func DecodeJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return pgerrors.New(pgerrors.ErrCodeInvalidFormat, "unsupported content type %q", ct)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return pgerrors.New(pgerrors.ErrCodeInvalidFormat, "empty request body")
		}
		return pgerrors.Wrap(pgerrors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

// ReadError turns a non-2xx response into an error. The body is decoded as an
// ErrorBody when possible so the server's code survives the round trip.
func ReadError(resp *http.Response) error {
	var body ErrorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if json.Unmarshal(data, &body) == nil && body.Code != "" {
		return pgerrors.New(pgerrors.Code(body.Code), "%s", body.Message)
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return pgerrors.New(pgerrors.ErrCodeNetwork, "%s: %s", resp.Status, msg)
}
