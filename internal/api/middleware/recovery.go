package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/corsgate/corsgate/internal/api/types"
	appErr "github.com/corsgate/corsgate/pkg/errors"
	"github.com/corsgate/corsgate/pkg/logger"
)

// Recovery logs panics from downstream handlers and answers 500. CORS
// wrapping sits inside it, so a wrapped handler's panic ends up here.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				id := GetRequestID(r.Context())
				logger.L().Error("panic recovered",
					zap.String("id", id),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				types.WriteError(w, appErr.New(appErr.CodeInternal, "internal server error"), id)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
