package tabular

import (
	"regexp"

	"xplore/pkg/twitter"
)

// Tweet column names, kept stable so downstream analysis keeps working
// against previously exported files.
const (
	ColTweetID        = "tweet_Id"
	ColAuthorUsername = "Author_Username"
	ColSource         = "Source_of_Tweet"
	ColAuthorID       = "Author_id"
	ColTag            = "Tag"
	ColKeyword        = "Keyword"
	ColCreatedAt      = "Created_at"
	ColLocation       = "Location"
	ColTweetContent   = "Tweet_Content"
)

var (
	retweetRe = regexp.MustCompile(`RT @([^:\s]+):`)
	mentionRe = regexp.MustCompile(`@([^\s]+)`)
)

// TagFor classifies a tweet text by its leading reference: the retweeted
// account for retweets, otherwise the first mentioned account, otherwise
// empty.
func TagFor(text string) string {
	if m := retweetRe.FindStringSubmatch(text); m != nil {
		return "RT @" + m[1]
	}
	if m := mentionRe.FindStringSubmatch(text); m != nil {
		return "@" + m[1]
	}
	return ""
}

// TweetRecords flattens a collected search run into tabular rows. users
// is the deduplicated author map from the run; authors missing from it
// leave the username and location cells empty.
func TweetRecords(tweets []twitter.Tweet, users map[string]twitter.User, keyword string) []*Record {
	records := make([]*Record, 0, len(tweets))
	for _, tweet := range tweets {
		username := ""
		location := ""
		if author, ok := users[tweet.AuthorID]; ok {
			username = author.Username
			if author.Location != nil {
				location = *author.Location
			}
		}

		record := NewRecord().
			Set(ColTweetID, tweet.ID).
			Set(ColAuthorUsername, username).
			Set(ColSource, tweet.Source).
			Set(ColAuthorID, tweet.AuthorID).
			Set(ColTag, TagFor(tweet.Text)).
			Set(ColKeyword, keyword).
			Set(ColCreatedAt, tweet.CreatedAt).
			Set(ColLocation, location).
			Set(ColTweetContent, tweet.Text)
		records = append(records, record)
	}
	return records
}
