package view

import (
	"time"

	"github.com/groupfit/backend/domain"
)

// Display formats for the per-task agenda records.
const (
	agendaDateFormat = "Mon, 02 Jan"
	agendaTimeFormat = "15:04"
)

// AgendaTask is the display-oriented reshaping of a task: split date and
// time strings, grouping name instead of id, no per-task color.
type AgendaTask struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	StartDate        string `json:"start_date"`
	StartTime        string `json:"start_time"`
	EndDate          string `json:"end_date"`
	EndTime          string `json:"end_time"`
	Location         string `json:"location,omitempty"`
	Grouping         string `json:"grouping"`
	Notes            string `json:"notes,omitempty"`
	Priority         string `json:"priority,omitempty"`
	NotificationDate string `json:"notification_date,omitempty"`
	NotificationTime string `json:"notification_time,omitempty"`
	CreatedBy        string `json:"created_by"`
	IsComplete       bool   `json:"is_complete"`
	CompletedBy      string `json:"completed_by,omitempty"`
}

// AgendaBucket groups a period's tasks under one grouping for list display.
type AgendaBucket struct {
	GroupingID string       `json:"grouping_id"`
	Title      string       `json:"title"`
	Color      string       `json:"color"`
	Tasks      []AgendaTask `json:"tasks"`
}

// PeriodBuckets filters tasks to the period window around now and buckets
// them per grouping. Buckets follow the selection's iteration order; ids
// outside the selection are omitted entirely, while selected groupings
// without tasks yield empty buckets.
func PeriodBuckets(
	now time.Time,
	period domain.Period,
	tasks []domain.Task,
	groupings []domain.Grouping,
	selection []string,
) []AgendaBucket {
	window := PeriodWindow(now, period)

	byID := make(map[string]domain.Grouping, len(groupings))
	for _, g := range groupings {
		byID[g.ID] = g
	}

	buckets := make(map[string][]AgendaTask)
	for i := range tasks {
		t := &tasks[i]
		if !window.Contains(t.Start) {
			continue
		}
		g, ok := byID[t.GroupingID]
		if !ok {
			continue
		}
		buckets[g.ID] = append(buckets[g.ID], reshapeTask(t, g.Name))
	}

	var out []AgendaBucket
	for _, id := range selection {
		g, ok := byID[id]
		if !ok {
			continue
		}
		bucket := buckets[id]
		if bucket == nil {
			bucket = []AgendaTask{}
		}
		out = append(out, AgendaBucket{
			GroupingID: g.ID,
			Title:      g.Name,
			Color:      g.DefaultColor,
			Tasks:      bucket,
		})
	}
	return out
}

func reshapeTask(t *domain.Task, groupingName string) AgendaTask {
	at := AgendaTask{
		ID:          t.ID,
		Title:       t.Title,
		StartDate:   t.Start.Format(agendaDateFormat),
		StartTime:   t.Start.Format(agendaTimeFormat),
		EndDate:     t.End.Format(agendaDateFormat),
		EndTime:     t.End.Format(agendaTimeFormat),
		Location:    t.Location,
		Grouping:    groupingName,
		Notes:       t.Notes,
		Priority:    t.Priority,
		CreatedBy:   t.CreatedBy,
		IsComplete:  t.IsComplete,
		CompletedBy: t.CompletedBy,
	}
	if t.Notification != nil {
		at.NotificationDate = t.Notification.Format(agendaDateFormat)
		at.NotificationTime = t.Notification.Format(agendaTimeFormat)
	}
	return at
}
