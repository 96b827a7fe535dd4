package domain

// SellListEntry is one line of a visitor's sell list: an item they want to
// sell to the store, in a given condition tier.
type SellListEntry struct {
	ItemID    int64   `db:"item_id" json:"itemId"`
	Name      string  `db:"name" json:"name"`
	Condition string  `db:"condition" json:"condition"`
	Price     float64 `db:"price" json:"price"`
	Qty       int     `db:"qty" json:"quantity"`
}

// Quote statuses.
const (
	QuoteNew       = "new"
	QuoteContacted = "contacted"
	QuoteClosed    = "closed"
)

type Quote struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	Phone     string  `db:"phone" json:"phone"`
	Message   string  `db:"message" json:"message"`
	Total     float64 `db:"total" json:"total"`
	Status    string  `db:"status" json:"status"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

type QuoteItem struct {
	QuoteID   string  `db:"quote_id" json:"-"`
	ItemID    int64   `db:"item_id" json:"itemId"`
	Name      string  `db:"name" json:"name"`
	Condition string  `db:"condition" json:"condition"`
	Qty       int     `db:"qty" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}
