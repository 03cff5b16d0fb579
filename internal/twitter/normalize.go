package twitter

const (
	// maxTextLength bounds normalized tweet text, in runes. Longer text
	// is cut and marked with an ellipsis; the result never exceeds the
	// bound.
	maxTextLength = 280

	ellipsis = "..."

	// placeholderHandle is the platform's anonymous permalink segment,
	// used when a tweet's author cannot be resolved.
	placeholderHandle = "i"
)

func tweetURL(handle, id string) string {
	return "https://x.com/" + handle + "/status/" + id
}

func profileURL(handle string) string {
	if handle == "" {
		return ""
	}
	return "https://x.com/" + handle
}

// truncate cuts s to at most max runes, replacing the tail with an
// ellipsis marker. Rune-based so multibyte text is never split
// mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// authorIndex builds an account lookup from the expanded users
// embedded in a tweet response.
func authorIndex(inc *includes) map[string]*User {
	if inc == nil || len(inc.Users) == 0 {
		return nil
	}
	m := make(map[string]*User, len(inc.Users))
	for _, raw := range inc.Users {
		u := normalizeUser(raw)
		m[raw.ID] = &u
	}
	return m
}

func normalizeUser(r rawUser) User {
	u := User{
		ID:        r.ID,
		Name:      r.Name,
		Username:  r.Username,
		Bio:       r.Description,
		CreatedAt: r.CreatedAt,
		URL:       profileURL(r.Username),
	}
	if r.PublicMetrics != nil {
		u.Metrics = &UserMetrics{
			Followers: r.PublicMetrics.FollowersCount,
			Following: r.PublicMetrics.FollowingCount,
			Tweets:    r.PublicMetrics.TweetCount,
			Listed:    r.PublicMetrics.ListedCount,
		}
	}
	return u
}

func normalizeTweet(r rawTweet, authors map[string]*User) Tweet {
	t := Tweet{
		ID:        r.ID,
		Text:      truncate(r.Text, maxTextLength),
		CreatedAt: r.CreatedAt,
	}

	handle := placeholderHandle
	if author, ok := authors[r.AuthorID]; ok && r.AuthorID != "" {
		t.Author = author
		if author.Username != "" {
			handle = author.Username
		}
	}

	if r.PublicMetrics != nil {
		t.Metrics = &TweetMetrics{
			Likes:    r.PublicMetrics.LikeCount,
			Replies:  r.PublicMetrics.ReplyCount,
			Retweets: r.PublicMetrics.RetweetCount,
			Quotes:   r.PublicMetrics.QuoteCount,
		}
	}

	t.URL = tweetURL(handle, r.ID)
	return t
}
