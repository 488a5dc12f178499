// Package services contains application services for the bookwarm client.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookwarm/internal/client/api"
	"github.com/dmitrijs2005/bookwarm/internal/client/models"
	"github.com/dmitrijs2005/bookwarm/internal/common"
	"github.com/dmitrijs2005/bookwarm/internal/filex"
)

// dataURL is a test seam for image encoding.
var dataURL = filex.DataURL

// BookService wraps the book endpoints with input validation and image
// handling. All server state stays remote; this layer keeps nothing.
type BookService struct {
	client api.Client
}

func NewBookService(client api.Client) *BookService {
	return &BookService{client: client}
}

// Feed returns the community feed in server order.
func (b *BookService) Feed(ctx context.Context) ([]models.Book, error) {
	return b.client.ListBooks(ctx)
}

// Mine returns the caller's own recommendations.
func (b *BookService) Mine(ctx context.Context) ([]models.Book, error) {
	return b.client.ListMyBooks(ctx)
}

// Post validates the input, encodes the image file as a data URL and creates
// a recommendation. Only presence checks are done locally; everything else is
// the server's call.
func (b *BookService) Post(ctx context.Context, title, caption, imagePath string, rating int) (*models.Book, error) {
	if title == "" || caption == "" || imagePath == "" {
		return nil, fmt.Errorf("%w: title, caption and image are required", common.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", common.ErrValidation)
	}

	image, err := dataURL(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return b.client.CreateBook(ctx, api.CreateBookRequest{
		Title:   title,
		Caption: caption,
		Image:   image,
		Rating:  rating,
	})
}

// Delete removes one of the caller's recommendations by id.
func (b *BookService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	return b.client.DeleteBook(ctx, id)
}
