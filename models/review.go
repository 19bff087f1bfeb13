package models

// Review is one Google review mapped for the website.
type Review struct {
	AuthorName   string  `json:"authorName"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	Response     *string `json:"response"`
	RelativeTime string  `json:"relativeTime"`
}

// PlaceReviews is the aggregated review payload for the practice's Google
// Places listing.
type PlaceReviews struct {
	Name    string   `json:"name"`
	Rating  float64  `json:"rating"`
	Reviews []Review `json:"reviews"`
}
