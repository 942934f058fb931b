// Package view derives display-ready projections from the session cache's
// snapshot. Everything here is a pure function of its inputs: no store
// calls, no errors, unresolvable references degrade to defaults.
package view

import (
	"sort"

	"github.com/groupfit/backend/domain"
)

// DefaultEventColor is used when a task's grouping cannot be resolved.
const DefaultEventColor = "#000000"

// Event is one calendar entry on a given day.
type Event struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// Scope restricts which tasks a calendar projection covers: either the
// current filter selection, or one specific grouping with an explicit color.
type Scope struct {
	groupingIDs map[string]struct{}
	singleID    string
	singleColor string
}

// FilterScope covers all tasks whose grouping is in the selection.
func FilterScope(groupingIDs []string) Scope {
	set := make(map[string]struct{}, len(groupingIDs))
	for _, id := range groupingIDs {
		set[id] = struct{}{}
	}
	return Scope{groupingIDs: set}
}

// GroupingScope covers one grouping, with every event taking its color.
func GroupingScope(groupingID, color string) Scope {
	return Scope{singleID: groupingID, singleColor: color}
}

func (s Scope) includes(groupingID string) bool {
	if s.singleID != "" {
		return groupingID == s.singleID
	}
	_, ok := s.groupingIDs[groupingID]
	return ok
}

// CalendarEvents projects the task list into a map from calendar day
// (YYYY-MM-DD, the start instant's wall clock) to the events on that day.
func CalendarEvents(tasks []domain.Task, groupings []domain.Grouping, scope Scope) map[string][]Event {
	colors := make(map[string]string, len(groupings))
	for _, g := range groupings {
		colors[g.ID] = g.DefaultColor
	}

	events := make(map[string][]Event)
	for i := range tasks {
		t := &tasks[i]
		if !scope.includes(t.GroupingID) {
			continue
		}

		color := scope.singleColor
		if color == "" {
			color = colors[t.GroupingID]
			if color == "" {
				color = DefaultEventColor
			}
		}

		key := t.DateKey()
		events[key] = append(events[key], Event{Title: t.Title, Color: color})
	}
	return events
}

// MarkedDates returns the set of calendar days on which the grouping has at
// least one task. An empty grouping id marks days across all tasks.
func MarkedDates(tasks []domain.Task, groupingID string) map[string]struct{} {
	marked := make(map[string]struct{})
	for i := range tasks {
		if groupingID != "" && tasks[i].GroupingID != groupingID {
			continue
		}
		marked[tasks[i].DateKey()] = struct{}{}
	}
	return marked
}

// MarkedDateKeys returns the marked days as a sorted slice. The day keys
// are zero-padded ISO dates, so lexical order is chronological order.
func MarkedDateKeys(tasks []domain.Task, groupingID string) []string {
	marked := MarkedDates(tasks, groupingID)
	keys := make([]string, 0, len(marked))
	for key := range marked {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
