package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskDateKeyUsesWallClock(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name  string
		start time.Time
		want  string
	}{
		{
			name:  "utc",
			start: time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC),
			want:  "2024-06-18",
		},
		{
			name:  "late evening stays on its own day",
			start: time.Date(2024, 6, 18, 23, 30, 0, 0, zone),
			want:  "2024-06-18",
		},
		{
			name:  "just after midnight",
			start: time.Date(2024, 6, 19, 0, 15, 0, 0, zone),
			want:  "2024-06-19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Start: tt.start}
			assert.Equal(t, tt.want, task.DateKey())
		})
	}
}

func TestTaskValidate(t *testing.T) {
	start := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid",
			task: Task{Title: "Run", Start: start, End: start.Add(time.Hour)},
		},
		{
			name:    "empty title",
			task:    Task{Start: start, End: start.Add(time.Hour)},
			wantErr: true,
		},
		{
			name:    "start after end",
			task:    Task{Title: "Run", Start: start.Add(2 * time.Hour), End: start},
			wantErr: true,
		},
		{
			name: "zero end is accepted",
			task: Task{Title: "Run", Start: start},
		},
		{
			name: "start equals end",
			task: Task{Title: "Run", Start: start, End: start},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr {
				assert.True(t, IsDomainError(err, ErrCodeInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}
