package reference

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"closeouts/internal/app/server/api/http/apierror"
	"closeouts/internal/domain/closeout"
)

// Handler отдаёт справочники заведений и терминалов.
type Handler struct {
	service    closeout.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service closeout.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "reference_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.venuesOp(), h.venues)
	huma.Register(api, h.saleCentersOp(), h.saleCenters)
}

func (h *Handler) venues(ctx context.Context, _ *struct{}) (*venuesOutput, error) {
	venues, err := h.service.ListVenues(ctx)
	if err != nil {
		h.log.Error("list venues failed", "error", err)
		return nil, apierror.FromDomain(err)
	}
	if venues == nil {
		venues = []closeout.Venue{}
	}
	return &venuesOutput{Body: venuesResponse{Venues: venues}}, nil
}

func (h *Handler) saleCenters(ctx context.Context, _ *struct{}) (*saleCentersOutput, error) {
	centers, err := h.service.ListSaleCenters(ctx)
	if err != nil {
		h.log.Error("list sale centers failed", "error", err)
		return nil, apierror.FromDomain(err)
	}
	if centers == nil {
		centers = []closeout.SaleCenter{}
	}
	return &saleCentersOutput{Body: saleCentersResponse{SaleCenters: centers}}, nil
}
