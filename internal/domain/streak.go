package domain

import "time"

// maxStreakLookback bounds the backward walk so corrupt data cannot spin the
// loop forever.
const maxStreakLookback = 365

// Streak counts consecutive qualifying days ending today, walking backward
// from now. The rules are asymmetric on purpose:
//
//   - Today over the daily limit voids the whole streak immediately.
//   - Today with zero tracked minutes contributes nothing, but the walk still
//     proceeds to evaluate earlier days.
//   - A past day qualifies while it has tracked usage at or under the limit;
//     the first past day with no usage or with usage over the limit ends the
//     walk.
//   - Days before the plan existed are never counted.
//
// Only completed sessions contribute, bucketed by the local calendar day of
// their start time.
func Streak(sessions []SessionEvent, plan *WeeklyPlan, now time.Time) int {
	if plan == nil {
		return 0
	}

	usage := make(map[time.Time]int)
	for _, s := range sessions {
		if !s.IsComplete {
			continue
		}
		usage[dayStart(s.StartedAt())] += s.Minutes()
	}

	var planDay time.Time
	if created, ok := plan.CreatedTime(); ok {
		planDay = dayStart(created)
	}

	streak := 0
	for i := 0; i < maxStreakLookback; i++ {
		day := dayStart(now.AddDate(0, 0, -i))
		if !planDay.IsZero() && day.Before(planDay) {
			break
		}
		minutes := usage[day]
		if i == 0 {
			if minutes > plan.DailyLimitMinutes {
				return 0
			}
			if minutes > 0 {
				streak++
			}
			continue
		}
		if minutes == 0 || minutes > plan.DailyLimitMinutes {
			break
		}
		streak++
	}
	return streak
}

// dayStart truncates a time to local midnight.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
