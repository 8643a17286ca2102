package reference

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) venuesOp() huma.Operation {
	return huma.Operation{
		OperationID: "list-venues",
		Method:      http.MethodGet,
		Path:        "/venues",
		Summary:     "List venues",
		Description: "Venue codes and display names used to label closeouts",
		Tags:        []string{"reference"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) saleCentersOp() huma.Operation {
	return huma.Operation{
		OperationID: "list-sale-centers",
		Method:      http.MethodGet,
		Path:        "/sale-centers",
		Summary:     "List sale centers",
		Description: "POS terminals with their owning venue",
		Tags:        []string{"reference"},
		Middlewares: h.middleware,
	}
}
