package domain

// Period selects the date window the task list view covers.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriod is used whenever no stored selection can be read.
const DefaultPeriod = PeriodWeek

func (p Period) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}
