package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports whether the API can reach its database",
		Tags:        []string{"health"},
		Errors:      []int{http.StatusServiceUnavailable},
		Middlewares: h.middleware,
	}
}
