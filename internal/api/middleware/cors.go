package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/corsgate/corsgate/pkg/cors"
	"github.com/corsgate/corsgate/pkg/logger"
)

// CORS gates cross-origin access to a route group with policy. A nil policy
// allows every origin that sends an Origin header.
func CORS(policy cors.Policy) func(http.Handler) http.Handler {
	name := "allow-all"
	if policy != nil {
		name = policy.String()
	}
	logger.L().Debug("cors policy installed", zap.String("policy", name))
	return cors.Middleware(policy)
}
