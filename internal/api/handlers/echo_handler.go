package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/corsgate/corsgate/internal/api/middleware"
	"github.com/corsgate/corsgate/internal/api/types"
	appErr "github.com/corsgate/corsgate/pkg/errors"
	"github.com/corsgate/corsgate/pkg/logger"
)

const maxEchoBody = 1 << 20

// EchoHandler returns the posted JSON document inside the response envelope.
// It is the handler the CORS gate sits in front of.
type EchoHandler struct{}

func NewEchoHandler() *EchoHandler { return &EchoHandler{} }

func (h *EchoHandler) Echo(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetRequestID(r.Context())

	var body json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEchoBody))
	if err := dec.Decode(&body); err != nil {
		logger.L().Debug("echo: bad body", zap.String("id", id), zap.Error(err))
		types.WriteError(w, appErr.Wrap(err, appErr.CodeInvalid, "request body must be a JSON document"), id)
		return
	}

	types.WriteJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    body,
		Meta:    &types.Meta{RequestID: id},
	})
}
