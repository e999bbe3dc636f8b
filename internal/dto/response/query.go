package response

import (
	"time"

	"bizportal/internal/data/entity"
)

type QueryResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Message       string             `json:"message"`
	Status        entity.QueryStatus `json:"status"`
	Response      *string            `json:"response"`
	DateSubmitted time.Time          `json:"date_submitted"`
}

func QueryToResponse(q entity.Query) QueryResponse {
	return QueryResponse{
		ID:            q.ID,
		Name:          q.Name,
		Email:         q.Email,
		Message:       q.Message,
		Status:        q.Status,
		Response:      q.Response,
		DateSubmitted: q.DateSubmitted,
	}
}

func QueriesToResponse(queries []entity.Query) []QueryResponse {
	out := make([]QueryResponse, 0, len(queries))
	for _, q := range queries {
		out = append(out, QueryToResponse(q))
	}
	return out
}

type QueryPageResponse struct {
	PendingQueries []QueryResponse `json:"pending_queries"`
	QueryStatusImg string          `json:"query_status_img"`
}
