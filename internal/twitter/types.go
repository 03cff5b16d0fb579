package twitter

// Normalized result types. These are the stable shapes handed to tool
// consumers; raw upstream records never leave this package.

// Tweet is a normalized post summary.
type Tweet struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Author    *User         `json:"author,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
	Metrics   *TweetMetrics `json:"metrics,omitempty"`
	URL       string        `json:"url"`
}

// TweetMetrics carries public engagement counters.
type TweetMetrics struct {
	Likes    int `json:"likes"`
	Replies  int `json:"replies"`
	Retweets int `json:"retweets"`
	Quotes   int `json:"quotes"`
}

// User is a normalized account summary.
type User struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Username  string       `json:"username"`
	Bio       string       `json:"bio,omitempty"`
	CreatedAt string       `json:"created_at,omitempty"`
	Metrics   *UserMetrics `json:"metrics,omitempty"`
	URL       string       `json:"url"`
}

// UserMetrics carries public account counters.
type UserMetrics struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Tweets    int `json:"tweets"`
	Listed    int `json:"listed"`
}

// Wire types for the Twitter API v2 response envelopes. The API wraps
// payloads in a "data" member, embeds expanded records under
// "includes", and reports failures (including missing resources on an
// otherwise 200 response) through an "errors" array.

type rawTweet struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	AuthorID      string           `json:"author_id"`
	CreatedAt     string           `json:"created_at"`
	PublicMetrics *rawTweetMetrics `json:"public_metrics"`
}

type rawTweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

type rawUser struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Username      string          `json:"username"`
	Description   string          `json:"description"`
	CreatedAt     string          `json:"created_at"`
	PublicMetrics *rawUserMetrics `json:"public_metrics"`
}

type rawUserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
	ListedCount    int `json:"listed_count"`
}

type includes struct {
	Users []rawUser `json:"users"`
}

type tweetEnvelope struct {
	Data     *rawTweet  `json:"data"`
	Includes *includes  `json:"includes"`
	Errors   []apiError `json:"errors"`
}

type tweetsEnvelope struct {
	Data     []rawTweet `json:"data"`
	Includes *includes  `json:"includes"`
	Errors   []apiError `json:"errors"`
}

type userEnvelope struct {
	Data   *rawUser   `json:"data"`
	Errors []apiError `json:"errors"`
}

type usersEnvelope struct {
	Data   []rawUser  `json:"data"`
	Errors []apiError `json:"errors"`
}
