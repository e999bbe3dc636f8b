package request

type SubmitQueryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type RespondQueryRequest struct {
	QueryID  int64  `json:"query_id" validate:"required,gt=0"`
	Response string `json:"response" validate:"required"`
}
