package entity

import "time"

type QueryStatus string

const (
	QueryStatusPending  QueryStatus = "pending"
	QueryStatusComplete QueryStatus = "complete"
)

type Query struct {
	ID            int64       `db:"id"`
	Name          string      `db:"name"`
	Email         string      `db:"email"`
	Message       string      `db:"message"`
	Status        QueryStatus `db:"status"`
	Response      *string     `db:"response"`
	DateSubmitted time.Time   `db:"date_submitted"`
}
