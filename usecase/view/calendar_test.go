package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupfit/backend/domain"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalendarEventsScopedToSelection(t *testing.T) {
	groupings := []domain.Grouping{
		{ID: "a", Name: "Alpha", DefaultColor: "#111"},
		{ID: "b", Name: "Beta", DefaultColor: "#222"},
	}
	tasks := []domain.Task{
		{ID: "t1", Title: "X", GroupingID: "a", Start: day("2024-06-18T09:00")},
		{ID: "t2", Title: "Y", GroupingID: "b", Start: day("2024-06-18T10:00")},
	}

	events := CalendarEvents(tasks, groupings, FilterScope([]string{"a"}))

	require.Len(t, events, 1)
	require.Len(t, events["2024-06-18"], 1)
	assert.Equal(t, Event{Title: "X", Color: "#111"}, events["2024-06-18"][0])
}

func TestCalendarEventsGroupingScopeOverridesColor(t *testing.T) {
	groupings := []domain.Grouping{{ID: "a", Name: "Alpha", DefaultColor: "#111"}}
	tasks := []domain.Task{
		{ID: "t1", Title: "X", GroupingID: "a", Start: day("2024-06-18T09:00")},
		{ID: "t2", Title: "Y", GroupingID: "other", Start: day("2024-06-18T10:00")},
	}

	events := CalendarEvents(tasks, groupings, GroupingScope("a", "#abc"))

	require.Len(t, events["2024-06-18"], 1)
	assert.Equal(t, "#abc", events["2024-06-18"][0].Color)
}

func TestCalendarEventsUnresolvableGroupingGetsDefaultColor(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Orphan", GroupingID: "gone", Start: day("2024-06-18T09:00")},
	}

	events := CalendarEvents(tasks, nil, FilterScope([]string{"gone"}))

	require.Len(t, events["2024-06-18"], 1)
	assert.Equal(t, DefaultEventColor, events["2024-06-18"][0].Color)
}

func TestCalendarEventsGroupsByWallClockDay(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	tasks := []domain.Task{
		{ID: "t1", Title: "Late", GroupingID: "a", Start: time.Date(2024, 6, 18, 23, 30, 0, 0, zone)},
		{ID: "t2", Title: "Early", GroupingID: "a", Start: time.Date(2024, 6, 19, 0, 15, 0, 0, zone)},
	}
	groupings := []domain.Grouping{{ID: "a", DefaultColor: "#111"}}

	events := CalendarEvents(tasks, groupings, FilterScope([]string{"a"}))

	assert.Len(t, events["2024-06-18"], 1)
	assert.Len(t, events["2024-06-19"], 1)
}

func TestCalendarEventsIsPure(t *testing.T) {
	groupings := []domain.Grouping{{ID: "a", DefaultColor: "#111"}}
	tasks := []domain.Task{
		{ID: "t1", Title: "X", GroupingID: "a", Start: day("2024-06-18T09:00")},
		{ID: "t2", Title: "Y", GroupingID: "a", Start: day("2024-06-19T09:00")},
	}
	scope := FilterScope([]string{"a"})

	first := CalendarEvents(tasks, groupings, scope)
	second := CalendarEvents(tasks, groupings, scope)
	assert.Equal(t, first, second)
}

func TestMarkedDateKeysSortedChronologically(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", GroupingID: "a", Start: day("2024-12-01T09:00")},
		{ID: "t2", GroupingID: "a", Start: day("2024-06-18T09:00")},
		{ID: "t3", GroupingID: "a", Start: day("2024-06-18T17:00")},
		{ID: "t4", GroupingID: "a", Start: day("2024-09-05T09:00")},
	}

	want := []string{"2024-06-18", "2024-09-05", "2024-12-01"}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, MarkedDateKeys(tasks, "a"))
	}
}

func TestMarkedDates(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", GroupingID: "a", Start: day("2024-06-18T09:00")},
		{ID: "t2", GroupingID: "a", Start: day("2024-06-18T17:00")},
		{ID: "t3", GroupingID: "b", Start: day("2024-06-20T09:00")},
	}

	tests := []struct {
		name       string
		groupingID string
		want       []string
	}{
		{name: "scoped to grouping", groupingID: "a", want: []string{"2024-06-18"}},
		{name: "all groupings", groupingID: "", want: []string{"2024-06-18", "2024-06-20"}},
		{name: "unknown grouping", groupingID: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marked := MarkedDates(tasks, tt.groupingID)
			assert.Len(t, marked, len(tt.want))
			for _, key := range tt.want {
				assert.Contains(t, marked, key)
			}
		})
	}
}
