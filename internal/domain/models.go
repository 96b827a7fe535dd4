package domain

// Category names the catalog treats specially.
const (
	CategoryConsoles    = "Consoles"
	CategoryGames       = "Games"
	CategoryControllers = "Controllers"
	CategoryAccessories = "Accessories"
	CategoryHandhelds   = "Handhelds"
)

// Console type names.
const (
	ConsoleTypeNintendo    = "Nintendo"
	ConsoleTypePlayStation = "PlayStation"
	ConsoleTypeXbox        = "Xbox"
	ConsoleTypeOther       = "Other"
)

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

type ConsoleType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Console struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Slug          string `db:"slug" json:"slug"`
	ConsoleTypeID int64  `db:"console_type_id" json:"consoleTypeId"`
}

// Item is a catalog entry. Price is always the display tier; the optional
// tier columns hold condition based valuations whose meaning depends on the
// category (see Tiers).
type Item struct {
	ID                    int64    `db:"id" json:"id"`
	Name                  string   `db:"name" json:"name"`
	Description           *string  `db:"description" json:"description"`
	Price                 float64  `db:"price" json:"price"`
	AcceptablePrice       *float64 `db:"acceptable_price" json:"acceptablePrice"`
	GoodPrice             *float64 `db:"good_price" json:"goodPrice"`
	ConsoleOnlyPrice      *float64 `db:"console_only_price" json:"consoleOnlyPrice"`
	ConsoleWithController *float64 `db:"console_with_controller" json:"consoleWithController"`
	CompleteConsolePrice  *float64 `db:"complete_console_price" json:"completeConsolePrice"`
	ImageURL              *string  `db:"image_url" json:"imageUrl"`
	Barcode               *string  `db:"barcode" json:"barcode,omitempty"`
	CategoryID            int64    `db:"category_id" json:"categoryId"`
	ConsoleID             int64    `db:"console_id" json:"consoleId"`
	CreatedAt             string   `db:"created_at" json:"createdAt"`
	UpdatedAt             string   `db:"updated_at" json:"updatedAt"`
}

// ItemDetail is an Item joined with the names of its taxonomy.
type ItemDetail struct {
	Item
	CategoryName    string `db:"category_name" json:"categoryName"`
	ConsoleName     string `db:"console_name" json:"consoleName"`
	ConsoleTypeID   int64  `db:"console_type_id" json:"consoleTypeId"`
	ConsoleTypeName string `db:"console_type_name" json:"consoleTypeName"`
}

// Tiers returns the category specific price tiers of the item.
func (d ItemDetail) Tiers() Tiers { return TiersFor(d.CategoryName, d.Item) }
