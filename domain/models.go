package domain

import "time"

// TimestampLayout is the canonical form of Story.SubmittedAt.
const TimestampLayout = "2006-01-02T15:04:05Z"

type Story struct {
	ID          int64
	Title       string
	URL         string
	Submitter   string
	Score       int
	SubmittedAt string
}

type VoteEvent struct {
	ID      int64
	StoryID int64
	IsLike  bool
}

type VoteCounts struct {
	Likes    int
	Dislikes int
}

// FetchedItem is the raw item payload returned by the remote item endpoint.
// Pointer fields distinguish an absent field from a zero value.
type FetchedItem struct {
	ID    *int64  `json:"id"`
	By    *string `json:"by"`
	Score *int    `json:"score"`
	Time  *int64  `json:"time"`
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

// FormatTimestamp converts a Unix epoch in seconds to the canonical UTC form.
func FormatTimestamp(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(TimestampLayout)
}
