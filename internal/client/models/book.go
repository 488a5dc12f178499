package models

// BookUser is the embedded author summary on a recommendation.
type BookUser struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePic,omitempty"`
}

// Book is a single recommendation owned by the remote API. The client only
// reads and writes it over requests; no local copy is kept. Field tags follow
// the backend's Mongo-style serialization ("_id", "images", "ratings").
type Book struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title"`
	Caption   string   `json:"caption"`
	Image     string   `json:"images"`
	Rating    int      `json:"ratings"`
	User      BookUser `json:"user"`
	CreatedAt string   `json:"createdAt"`
}
