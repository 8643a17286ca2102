package closeout

import "closeouts/internal/domain/closeout"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Closeouts []closeout.Record `json:"closeouts" doc:"All stored cash closeouts"`
}

type recordInput struct {
	Body closeout.Record
}

type deleteInput struct {
	PartitionKey string `query:"PK" required:"true" example:"MAD01" doc:"Venue / workplace code"`
	SortKey      string `query:"SK" required:"true" example:"2024-03-05#1" doc:"Closeout sort key"`
}

type syncInput struct {
	Body syncRequest
}

type syncRequest struct {
	BusinessDay string `json:"businessDay" example:"2024-03-05" doc:"Business day to pull from the POS, YYYY-MM-DD"`
}

type okOutput struct {
	Status int
	Body   okResponse
}

type okResponse struct {
	OK bool `json:"ok"`
}
