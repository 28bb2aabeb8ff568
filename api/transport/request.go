package transport

import "github.com/fastygo/todoview/domain"

// TodoRequest is the body sent to the todo API on create and update.
// Empty date parts are omitted, like an empty form field.
type TodoRequest struct {
	ID          *int   `json:"id,omitempty"`
	Title       string `json:"title"`
	Day         string `json:"day,omitempty"`
	Month       string `json:"month,omitempty"`
	Year        string `json:"year,omitempty"`
	Completed   bool   `json:"completed"`
	Description string `json:"description,omitempty"`
}

// NewTodoRequest builds a request body from a record.
func NewTodoRequest(rec domain.Record) TodoRequest {
	return TodoRequest{
		ID:          rec.ID,
		Title:       rec.Title,
		Day:         rec.Day.String(),
		Month:       rec.Month.String(),
		Year:        rec.Year.String(),
		Completed:   rec.Completed,
		Description: rec.Description,
	}
}
