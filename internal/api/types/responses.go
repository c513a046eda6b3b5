package types

import (
	"encoding/json"
	"net/http"

	appErr "github.com/corsgate/corsgate/pkg/errors"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes resp with the given status.
func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError renders err in the standard envelope, choosing the status from its code.
func WriteError(w http.ResponseWriter, err error, requestID string) {
	resp := APIResponse{Error: FromAppError(err)}
	if requestID != "" {
		resp.Meta = &Meta{RequestID: requestID}
	}
	WriteJSON(w, appErr.HTTPStatus(appErr.CodeOf(err)), resp)
}
