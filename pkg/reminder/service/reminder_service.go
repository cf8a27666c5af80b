package service

import (
	"context"
	"time"
)

type NotifyOutcome string

const (
	NotifySent    NotifyOutcome = "sent"
	NotifySkipped NotifyOutcome = "skipped" // farmer or token missing
	NotifyFailed  NotifyOutcome = "failed"
)

type RescheduleOutcome string

const (
	RescheduleOK              RescheduleOutcome = "ok"
	RescheduleSkipped         RescheduleOutcome = "skipped"
	RescheduleInvalidInterval RescheduleOutcome = "invalid_interval"
	RescheduleFailed          RescheduleOutcome = "failed"
)

// RecordResult is what one pass did to one due user crop.
type RecordResult struct {
	UserCropID string
	UserID     string
	Notify     NotifyOutcome
	MessageID  string
	Reschedule RescheduleOutcome
	Next       *time.Time
	Err        error
}

type Report struct {
	Now     time.Time
	Results []RecordResult
}

func (r Report) Count(o NotifyOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Notify == o {
			n++
		}
	}
	return n
}

func (r Report) Rescheduled() int {
	n := 0
	for _, res := range r.Results {
		if res.Reschedule == RescheduleOK {
			n++
		}
	}
	return n
}

type ReminderService interface {
	// Sweep notifies the owners of every due user crop and moves each one's
	// next watering to now + interval. Store failures stop the pass and are
	// returned with the results gathered so far.
	Sweep(ctx context.Context) (Report, error)
}
