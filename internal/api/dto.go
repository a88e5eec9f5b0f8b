package api

// StoryResponse is one entry of the newsfeed. "by" and "time" keep the
// field names of the remote item payload.
type StoryResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	By       string `json:"by"`
	Score    int    `json:"score"`
	Time     string `json:"time"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}
