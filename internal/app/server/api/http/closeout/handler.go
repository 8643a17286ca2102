package closeout

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"closeouts/internal/app/server/api/http/apierror"
	"closeouts/internal/domain/closeout"
)

type Handler struct {
	service    closeout.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service closeout.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "closeout_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.syncOp(), h.sync)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	records, err := h.service.List(ctx)
	if err != nil {
		return nil, h.fail("list", err)
	}
	if records == nil {
		records = []closeout.Record{}
	}
	return &listOutput{Body: listResponse{Closeouts: records}}, nil
}

func (h *Handler) create(ctx context.Context, input *recordInput) (*okOutput, error) {
	if err := h.service.Create(ctx, input.Body); err != nil {
		return nil, h.fail("create", err)
	}
	return &okOutput{Status: http.StatusCreated, Body: okResponse{OK: true}}, nil
}

func (h *Handler) update(ctx context.Context, input *recordInput) (*okOutput, error) {
	if err := h.service.Update(ctx, input.Body); err != nil {
		return nil, h.fail("update", err)
	}
	return &okOutput{Status: http.StatusOK, Body: okResponse{OK: true}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	key := closeout.Key{PartitionKey: input.PartitionKey, SortKey: input.SortKey}
	if err := h.service.Delete(ctx, key); err != nil {
		return nil, h.fail("delete", err)
	}
	return &struct{}{}, nil
}

func (h *Handler) sync(ctx context.Context, input *syncInput) (*okOutput, error) {
	if err := h.service.RequestSync(ctx, input.Body.BusinessDay); err != nil {
		return nil, h.fail("sync", err)
	}
	return &okOutput{Status: http.StatusOK, Body: okResponse{OK: true}}, nil
}

func (h *Handler) fail(op string, err error) error {
	apiErr := apierror.FromDomain(err)
	if se, ok := apiErr.(huma.StatusError); ok && se.GetStatus() >= http.StatusInternalServerError {
		h.log.Error("request failed", "op", op, "error", err)
	}
	return apiErr
}
