package models

import "fmt"

// githubHourOffset is the difference between the CI host clock and Norwegian time
const githubHourOffset = 2

// ValidHour returns the hour a ticket validity is rendered with. On the GitHub
// hosted runners the browser clock is two hours behind Norway.
func ValidHour(hour int, runOnGitHub bool) string {
	if runOnGitHub {
		hour = (hour - githubHourOffset + 24) % 24
	}
	return fmt.Sprintf("%02d", hour)
}

// ValidityStamp renders "dd.mm.yyyy - HH:MM" as shown in the ticket details
func ValidityStamp(date string, hour, minute int, runOnGitHub bool) string {
	return fmt.Sprintf("%s - %s:%02d", date, ValidHour(hour, runOnGitHub), minute)
}
