package domain

// ProductSummary is a catalog entry as listed by the products endpoint.
// It exists only for the duration of a catalog render and is never persisted.
type ProductSummary struct {
	ID           int64
	Title        string
	Price        Money
	ThumbnailURL string
}
