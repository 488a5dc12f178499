package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookwarm/internal/client/models"
)

// Feed prints the community feed.
func (a *App) Feed(ctx context.Context) error {
	books, err := a.books.Feed(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(books) == 0 {
		fmt.Println("No recommendations yet")
		return nil
	}
	for _, b := range books {
		printBook(b)
	}
	return nil
}

// Mine prints the caller's own recommendations.
func (a *App) Mine(ctx context.Context) error {
	books, err := a.books.Mine(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(books) == 0 {
		fmt.Println("You have not shared any books yet")
		return nil
	}
	for _, b := range books {
		printBook(b)
	}
	return nil
}

// Post interactively collects a recommendation and submits it.
func (a *App) Post(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter book title", os.Stdout)
	if err != nil {
		return err
	}

	caption, err := getMultiline(a.reader, "Enter caption", os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Enter cover image file", os.Stdout)
	if err != nil {
		return err
	}

	ratingText, err := getSimpleText(a.reader, "Enter rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil {
		log.Printf("Error: rating must be a number")
		return err
	}

	book, err := a.books.Post(ctx, title, caption, imagePath, rating)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Posted %q\n", book.Title)
	return nil
}

// Delete asks for a book id, confirms and removes the recommendation.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter book id to delete", os.Stdout)
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, "Delete this recommendation? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.books.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}

func printBook(b models.Book) {
	fmt.Printf("[%s] %s %s\n", b.ID, b.Title, stars(b.Rating))
	if b.User.Username != "" {
		fmt.Printf("  by %s\n", b.User.Username)
	}
	if b.Caption != "" {
		fmt.Printf("  %s\n", b.Caption)
	}
	if b.CreatedAt != "" {
		fmt.Printf("  shared %s\n", b.CreatedAt)
	}
}

// stars renders a 1..5 rating as filled and empty stars.
func stars(rating int) string {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= rating {
			sb.WriteRune('★')
		} else {
			sb.WriteRune('☆')
		}
	}
	return sb.String()
}
