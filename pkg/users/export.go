package users

import (
	"strconv"

	"xplore/pkg/tabular"
	"xplore/pkg/twitter"
)

// UserRecords flattens user profiles into tabular rows. Absent optional
// fields become empty cells; counters default to zero when the API
// withheld public metrics.
func UserRecords(profiles []twitter.User) []*tabular.Record {
	records := make([]*tabular.Record, 0, len(profiles))
	for _, user := range profiles {
		location := ""
		if user.Location != nil {
			location = *user.Location
		}
		description := ""
		if user.Description != nil {
			description = *user.Description
		}
		verified := ""
		if user.Verified != nil {
			verified = strconv.FormatBool(*user.Verified)
		}

		metrics := user.PublicMetrics
		if metrics == nil {
			metrics = &twitter.UserMetrics{}
		}

		record := tabular.NewRecord().
			Set("id", user.ID).
			Set("username", user.Username).
			Set("name", user.Name).
			Set("created_at", user.CreatedAt).
			Set("location", location).
			Set("verified", verified).
			Set("description", description).
			Set("followers_count", strconv.FormatInt(metrics.FollowersCount, 10)).
			Set("following_count", strconv.FormatInt(metrics.FollowingCount, 10)).
			Set("tweet_count", strconv.FormatInt(metrics.TweetCount, 10)).
			Set("listed_count", strconv.FormatInt(metrics.ListedCount, 10))
		records = append(records, record)
	}
	return records
}

// ExportCSV writes user profiles to path as CSV, overwriting any
// existing file.
func ExportCSV(path string, profiles []twitter.User) error {
	return tabular.WriteCSV(path, UserRecords(profiles))
}
