package model

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type DeadlineType string

const (
	DeadlineSpecific DeadlineType = "specific"
	DeadlineToday    DeadlineType = "today"
	DeadlineThisWeek DeadlineType = "this week"
	DeadlineNone     DeadlineType = "none"
)

func (d DeadlineType) Valid() bool {
	switch d {
	case DeadlineSpecific, DeadlineToday, DeadlineThisWeek, DeadlineNone:
		return true
	}
	return false
}

type Urgency string

const (
	Urgent    Urgency = "urgent"
	NotUrgent Urgency = "not urgent"
)

func (u Urgency) Valid() bool {
	return u == Urgent || u == NotUrgent
}

type Importance string

const (
	Important    Importance = "important"
	NotImportant Importance = "not important"
)

func (i Importance) Valid() bool {
	return i == Important || i == NotImportant
}

// Frequency is the recurrence rule of a task or subtask.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyCustom  Frequency = "custom"
	FrequencyNone    Frequency = "none"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencyCustom, FrequencyNone:
		return true
	}
	return false
}

type RecurrenceEndType string

const (
	EndNever       RecurrenceEndType = "never"
	EndDate        RecurrenceEndType = "date"
	EndOccurrences RecurrenceEndType = "occurrences"
)

func (r RecurrenceEndType) Valid() bool {
	switch r {
	case EndNever, EndDate, EndOccurrences:
		return true
	}
	return false
}
