package api

import (
	"context"

	"github.com/dmitrijs2005/bookwarm/internal/client/models"
)

// CreateBookRequest is the body of POST /api/books/. Image is a base64
// data URL; Rating is 1..5.
type CreateBookRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	Rating  int    `json:"ratings"`
}

// Client is the remote bookwarm API.
//
// SetToken installs the bearer token sent with authenticated calls; an empty
// string removes it. The session store owns the token lifecycle and keeps the
// client in sync with the current session.
type Client interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListMyBooks(ctx context.Context) ([]models.Book, error)
	CreateBook(ctx context.Context, req CreateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
	SetToken(token string)
}
