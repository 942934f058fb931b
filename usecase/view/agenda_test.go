package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupfit/backend/domain"
)

func TestPeriodBucketsFollowSelectionOrder(t *testing.T) {
	now := time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)
	groupings := []domain.Grouping{
		{ID: "a", Name: "Alpha", DefaultColor: "#111"},
		{ID: "b", Name: "Beta", DefaultColor: "#222"},
		{ID: "c", Name: "Gamma", DefaultColor: "#333"},
	}
	tasks := []domain.Task{
		{ID: "t1", Title: "In week", GroupingID: "a", Start: day("2024-06-18T09:00"), End: day("2024-06-18T10:00")},
		{ID: "t2", Title: "Also in week", GroupingID: "c", Start: day("2024-06-21T09:00"), End: day("2024-06-21T10:00")},
		{ID: "t3", Title: "Unselected", GroupingID: "b", Start: day("2024-06-19T09:00"), End: day("2024-06-19T10:00")},
	}

	buckets := PeriodBuckets(now, domain.PeriodWeek, tasks, groupings, []string{"c", "a"})

	require.Len(t, buckets, 2, "unselected groupings are omitted entirely")
	assert.Equal(t, "c", buckets[0].GroupingID)
	assert.Equal(t, "a", buckets[1].GroupingID)
	assert.Equal(t, "Gamma", buckets[0].Title)
	assert.Equal(t, "#333", buckets[0].Color)
}

func TestPeriodBucketsSelectedButEmptyGrouping(t *testing.T) {
	now := time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)
	groupings := []domain.Grouping{{ID: "a", Name: "Alpha", DefaultColor: "#111"}}

	buckets := PeriodBuckets(now, domain.PeriodWeek, nil, groupings, []string{"a"})

	require.Len(t, buckets, 1)
	require.NotNil(t, buckets[0].Tasks)
	assert.Empty(t, buckets[0].Tasks)
}

func TestPeriodBucketsSkipUnknownSelectionIDs(t *testing.T) {
	now := time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)
	groupings := []domain.Grouping{{ID: "a", Name: "Alpha"}}

	buckets := PeriodBuckets(now, domain.PeriodWeek, nil, groupings, []string{"gone", "a"})

	require.Len(t, buckets, 1)
	assert.Equal(t, "a", buckets[0].GroupingID)
}

func TestPeriodBucketsWindowFilter(t *testing.T) {
	now := time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)
	groupings := []domain.Grouping{{ID: "a", Name: "Alpha"}}
	tasks := []domain.Task{
		{ID: "inside", Title: "Inside", GroupingID: "a", Start: day("2024-06-17T00:00"), End: day("2024-06-17T01:00")},
		{ID: "before", Title: "Before", GroupingID: "a", Start: day("2024-06-16T23:00"), End: day("2024-06-16T23:30")},
		{ID: "after", Title: "After", GroupingID: "a", Start: day("2024-06-24T00:00"), End: day("2024-06-24T01:00")},
	}

	buckets := PeriodBuckets(now, domain.PeriodWeek, tasks, groupings, []string{"a"})

	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Tasks, 1)
	assert.Equal(t, "inside", buckets[0].Tasks[0].ID)
}

func TestReshapeTaskSplitsDateAndTime(t *testing.T) {
	notification := day("2024-06-18T08:45")
	task := domain.Task{
		ID:           "t1",
		Title:        "Leg day",
		Start:        day("2024-06-18T09:00"),
		End:          day("2024-06-18T10:30"),
		Location:     "Gym",
		Notes:        "bring shoes",
		Priority:     "high",
		Notification: &notification,
		CreatedBy:    "user-1",
	}

	got := reshapeTask(&task, "Alpha")

	assert.Equal(t, "Tue, 18 Jun", got.StartDate)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "Tue, 18 Jun", got.EndDate)
	assert.Equal(t, "10:30", got.EndTime)
	assert.Equal(t, "Alpha", got.Grouping)
	assert.Equal(t, "08:45", got.NotificationTime)
}
