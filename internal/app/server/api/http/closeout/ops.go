package closeout

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "list-closeouts",
		Method:      http.MethodGet,
		Path:        "/closeouts",
		Summary:     "List cash closeouts",
		Tags:        []string{"closeouts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "create-closeout",
		Method:        http.MethodPost,
		Path:          "/closeouts",
		Summary:       "Create a cash closeout",
		Tags:          []string{"closeouts"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "update-closeout",
		Method:      http.MethodPut,
		Path:        "/closeouts",
		Summary:     "Replace a cash closeout by PK and SK",
		Tags:        []string{"closeouts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "delete-closeout",
		Method:        http.MethodDelete,
		Path:          "/closeouts",
		Summary:       "Delete a cash closeout by PK and SK",
		Tags:          []string{"closeouts"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-closeout-day",
		Method:      http.MethodPost,
		Path:        "/closeouts/sync",
		Summary:     "Request a POS sync for one business day",
		Tags:        []string{"closeouts", "sync"},
		Middlewares: h.middleware,
	}
}
