package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status   string `json:"status" example:"OK" doc:"OK when the API and its database are reachable"`
	Database string `json:"database,omitempty" example:"up" doc:"Database state, omitted when no check is configured"`
}
