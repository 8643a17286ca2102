package reference

import "closeouts/internal/domain/closeout"

type venuesOutput struct {
	Body venuesResponse
}

type venuesResponse struct {
	Venues []closeout.Venue `json:"venues"`
}

type saleCentersOutput struct {
	Body saleCentersResponse
}

type saleCentersResponse struct {
	SaleCenters []closeout.SaleCenter `json:"saleCenters"`
}
