package domain

import "time"

// Task represents a scheduled activity belonging to one grouping.
// Start and End carry combined date+time; the calendar-day key is the
// wall clock of Start, never a zone-converted value.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Start        time.Time  `json:"start_date_time"`
	End          time.Time  `json:"end_date_time"`
	Location     string     `json:"location,omitempty"`
	GroupingID   string     `json:"grouping_id"`
	Notes        string     `json:"notes,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	Notification *time.Time `json:"notification,omitempty"`
	CreatedBy    string     `json:"created_by"`
	IsComplete   bool       `json:"is_complete"`
	CompletedBy  string     `json:"completed_by,omitempty"`
}

// DateKey returns the calendar-day bucket of the task as YYYY-MM-DD,
// taken from the start instant's own wall clock.
func (t *Task) DateKey() string {
	if t == nil {
		return ""
	}
	return t.Start.Format("2006-01-02")
}

// Validate applies the mutation-boundary rules: a task needs a title and
// its start must not fall after its end. A notification instant after the
// start is accepted; a late reminder is still a valid row.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.Title == "" {
		return NewError(ErrCodeInvalid, "task title must not be empty")
	}
	if !t.End.IsZero() && t.Start.After(t.End) {
		return NewError(ErrCodeInvalid, "task start must not be after its end")
	}
	return nil
}
