package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/validation"
)

type ReviewAddCmd struct {
	Rating int    `arg:"" help:"How the day went, 1 (rough) to 5 (great)."`
	Note   string `short:"n" help:"Optional note about the day."`
}

func (c *ReviewAddCmd) Run(ctx *Context) error {
	if err := validation.Rating(c.Rating); err != nil {
		return err
	}
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	ctx.Engine.AddDailyReview(c.Rating, c.Note)
	fmt.Printf("Review saved for %s: %s\n", ctx.Engine.Today(), ratingBar(c.Rating))
	return nil
}

type ReviewShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, defaults to today)."`
}

func (c *ReviewShowCmd) Run(ctx *Context) error {
	if c.Date != "" {
		if err := validation.Date(c.Date); err != nil {
			return err
		}
	}
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = ctx.Engine.Today()
	}

	review, ok := ctx.Engine.DailyReviewFor(date)
	if !ok {
		fmt.Printf("No review for %s.\n", date)
		return nil
	}

	fmt.Printf("%s  %s\n", review.Date, ratingBar(review.Rating))
	if review.Note != "" {
		fmt.Printf("  %s\n", review.Note)
	}
	return nil
}

func ratingBar(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
