package domain

import (
	"fmt"
	"time"
)

// Timer is one tracked interval. A nil EndTime means the timer is running.
type Timer struct {
	ID        uint32  `json:"id"`
	StartTime uint64  `json:"start_time"`
	EndTime   *uint64 `json:"end_time"`
}

// IsRunning reports whether the timer has no end time yet.
func (t Timer) IsRunning() bool {
	return t.EndTime == nil
}

// Start returns the start time as a time.Time.
func (t Timer) Start() time.Time {
	return time.Unix(int64(t.StartTime), 0)
}

// End returns the end time, or now for a running timer.
func (t Timer) End(now time.Time) time.Time {
	if t.EndTime == nil {
		return now
	}
	return time.Unix(int64(*t.EndTime), 0)
}

// Duration is the elapsed time of the interval, measured to now when running.
func (t Timer) Duration(now time.Time) time.Duration {
	d := t.End(now).Sub(t.Start())
	if d < 0 {
		return 0
	}
	return d
}

// Overlap returns how much of the interval lies within [from, to].
func (t Timer) Overlap(from, to time.Time) time.Duration {
	start := t.Start()
	end := t.End(to)
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func (t Timer) clone() Timer {
	if t.EndTime != nil {
		end := *t.EndTime
		t.EndTime = &end
	}
	return t
}

// FormatHMS renders a duration as hh:mm:ss, with hours allowed past 99.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
