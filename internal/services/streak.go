package services

import "time"

const dateLayout = "2006-01-02"

// NextStreak returns the streak after creating content on today's date.
// Posting the day after the last post extends the streak, posting again on
// the same day keeps it, anything else starts over at 1.
func NextStreak(lastPostDate string, streak int, today time.Time) int {
	todayStr := today.Format(dateLayout)
	yesterdayStr := today.AddDate(0, 0, -1).Format(dateLayout)

	switch lastPostDate {
	case yesterdayStr:
		return streak + 1
	case todayStr:
		return streak
	default:
		return 1
	}
}
