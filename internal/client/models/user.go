// Package models holds the data structures exchanged with the bookwarm API.
package models

// User is the identity of a signed-in account as returned by the API. Field
// tags follow the backend's Mongo-style serialization ("_id", "profilePic").
type User struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePic,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// AuthResponse is the body returned by successful register and login calls.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
