package usecase

import (
	"time"

	"salon-booking/internal/data/entity"
)

// slotStarts returns the candidate start times for a resource on the
// given date: [open, close) in granularity steps. A trailing partial
// slot is truncated rather than overrunning closing time. Empty on a
// day off. Pure function of the weekly template.
func slotStarts(resource *entity.Resource, date time.Time, granularityMinutes int) []time.Time {
	if granularityMinutes <= 0 {
		return nil
	}

	open, close, ok := resource.HoursFor(int(date.Weekday()))
	if !ok {
		return nil
	}

	day := midnight(date)
	var starts []time.Time
	for m := open; m+granularityMinutes <= close; m += granularityMinutes {
		starts = append(starts, day.Add(time.Duration(m)*time.Minute))
	}

	return starts
}

// windowWithinHours reports whether [start, end) fits inside the
// resource's working hours on start's weekday.
func windowWithinHours(resource *entity.Resource, start, end time.Time) bool {
	open, close, ok := resource.HoursFor(int(start.Weekday()))
	if !ok {
		return false
	}

	day := midnight(start)
	startMin := int(start.Sub(day) / time.Minute)
	endMin := int(end.Sub(day) / time.Minute)

	return startMin >= open && endMin <= close && startMin < endMin
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
