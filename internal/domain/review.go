package domain

import "time"

// UnknownProduct is substituted when a request carries no product_id.
const UnknownProduct = "UNKNOWN"

// Review is one processed review row. Rows are write-once: the analytical
// store only ever sees appends, never updates or deletes.
type Review struct {
	ProductID      string
	ReviewText     string
	Score          float64
	Magnitude      float64
	Classification string
	ProcessedAt    time.Time
}
