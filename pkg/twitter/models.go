package twitter

// Tweet represents a single tweet as returned by the recent search endpoint.
// Timestamps stay in their ISO-8601 wire form; they are passed through to
// the tabular sink unmodified.
type Tweet struct {
	ID            string        `json:"id"`
	AuthorID      string        `json:"author_id"`
	Text          string        `json:"text"`
	CreatedAt     string        `json:"created_at"`
	Source        string        `json:"source,omitempty"`
	PublicMetrics *TweetMetrics `json:"public_metrics,omitempty"`
}

// TweetMetrics holds the public engagement counters of a tweet
type TweetMetrics struct {
	RetweetCount int64 `json:"retweet_count"`
	ReplyCount   int64 `json:"reply_count"`
	LikeCount    int64 `json:"like_count"`
	QuoteCount   int64 `json:"quote_count"`
}

// User represents an X account profile. Optional fields are pointers so the
// decoder can distinguish absent from empty.
type User struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Name          string       `json:"name"`
	CreatedAt     string       `json:"created_at,omitempty"`
	Location      *string      `json:"location,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Verified      *bool        `json:"verified,omitempty"`
	PublicMetrics *UserMetrics `json:"public_metrics,omitempty"`
}

// UserMetrics holds the public counters of a user profile
type UserMetrics struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	TweetCount     int64 `json:"tweet_count"`
	ListedCount    int64 `json:"listed_count"`
}

// Includes wraps objects side-loaded alongside the primary data, such as
// the user profiles referenced by a page of tweets.
type Includes struct {
	Users []User `json:"users,omitempty"`
}

// Meta carries pagination information for a search response. NextToken is
// nil on the final page.
type Meta struct {
	NewestID    string  `json:"newest_id,omitempty"`
	OldestID    string  `json:"oldest_id,omitempty"`
	ResultCount int     `json:"result_count"`
	NextToken   *string `json:"next_token,omitempty"`
}

// SearchResponse is the decoded body of a recent-search page
type SearchResponse struct {
	Data     []Tweet   `json:"data"`
	Includes *Includes `json:"includes,omitempty"`
	Meta     *Meta     `json:"meta,omitempty"`
}

// NextToken returns the continuation token of this page, or "" when the
// response carries none.
func (r *SearchResponse) NextToken() string {
	if r.Meta == nil || r.Meta.NextToken == nil {
		return ""
	}
	return *r.Meta.NextToken
}

// CountBucket is a single time bucket from the tweet counts endpoint
type CountBucket struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	TweetCount int64  `json:"tweet_count"`
}

// CountsMeta carries the total across all buckets
type CountsMeta struct {
	TotalTweetCount int64 `json:"total_tweet_count"`
}

// CountsResponse is the decoded body of a tweet counts request
type CountsResponse struct {
	Data []CountBucket `json:"data"`
	Meta *CountsMeta   `json:"meta,omitempty"`
}

// UsersResponse is the decoded body of a user lookup request
type UsersResponse struct {
	Data []User `json:"data"`
}
