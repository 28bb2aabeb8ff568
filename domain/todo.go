package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoDueDate labels todos without a complete month/year pair.
const NoDueDate = "No Due Date"

// DateField holds one date component as received from the todo API, which
// sends either strings or numbers. The zero value means absent.
type DateField string

// UnmarshalJSON accepts a JSON string, a JSON number or null. A number 0 is
// treated as absent.
func (f *DateField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = DateField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("date field: %w", err)
	}
	if v, err := n.Float64(); err == nil && v == 0 {
		*f = ""
		return nil
	}
	*f = DateField(n.String())
	return nil
}

// Present reports whether the component was supplied.
func (f DateField) Present() bool {
	return f != ""
}

func (f DateField) String() string {
	return string(f)
}

// Record is a raw todo record as returned by the persistence API.
type Record struct {
	ID          *int      `json:"id"`
	Title       string    `json:"title"`
	Day         DateField `json:"day,omitempty"`
	Month       DateField `json:"month,omitempty"`
	Year        DateField `json:"year,omitempty"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description,omitempty"`
}

// IntPtr returns a pointer to id, handy for building records.
func IntPtr(id int) *int {
	return &id
}

// Todo is one task. DueDate is derived from Month and Year when the Todo is
// built and never recomputed; changing the date means building a new Todo.
type Todo struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Day         DateField `json:"day,omitempty"`
	Month       DateField `json:"month,omitempty"`
	Year        DateField `json:"year,omitempty"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"due_date"`
}

// NewTodo builds a Todo from a raw record.
func NewTodo(rec Record) (Todo, error) {
	if rec.ID == nil {
		return Todo{}, ErrMissingID
	}
	return Todo{
		ID:          *rec.ID,
		Title:       rec.Title,
		Day:         rec.Day,
		Month:       rec.Month,
		Year:        rec.Year,
		Completed:   rec.Completed,
		Description: rec.Description,
		DueDate:     DueDateLabel(rec.Month, rec.Year),
	}, nil
}

// Record converts the todo back into a raw record.
func (t Todo) Record() Record {
	return Record{
		ID:          IntPtr(t.ID),
		Title:       t.Title,
		Day:         t.Day,
		Month:       t.Month,
		Year:        t.Year,
		Completed:   t.Completed,
		Description: t.Description,
	}
}

// DueDateLabel returns "month/yy" when both parts are present and NoDueDate
// otherwise. Years shorter than two characters are used whole.
func DueDateLabel(month, year DateField) string {
	if !month.Present() || !year.Present() {
		return NoDueDate
	}
	y := string(year)
	if len(y) > 2 {
		y = y[len(y)-2:]
	}
	return string(month) + "/" + y
}

// parseLabel splits a dated label into its numeric month and year parts.
func parseLabel(label string) (month, year int, ok bool) {
	i := strings.LastIndexByte(label, '/')
	if i < 0 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(label[:i])
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(label[i+1:])
	if err != nil {
		return 0, 0, false
	}
	return m, y, true
}
