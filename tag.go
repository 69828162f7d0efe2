package foxmark

import "context"

// Tag is a free-text label with a use counter, incremented whenever a mark
// is registered or updated with it.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagService lists tags for the tag browser.
type TagService interface {
	// Tags returns tags, most recently touched and most used first.
	Tags(ctx context.Context, limit int) ([]*Tag, error)
}
