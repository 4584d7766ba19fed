package models

// Mood is a daily wellbeing self-report.
type Mood string

const (
	MoodGreen Mood = "green"
	MoodAmber Mood = "amber"
	MoodRed   Mood = "red"
)

// ParseMood validates a raw mood value from query parameters or forms.
func ParseMood(s string) (Mood, bool) {
	switch Mood(s) {
	case MoodGreen, MoodAmber, MoodRed:
		return Mood(s), true
	}
	return "", false
}
