package domain

// Category is a browsing category for catalog books.
type Category string

const (
	CategoryComics      Category = "Comic Books"
	CategoryHarryPotter Category = "Harry Potter"
	CategoryNovels      Category = "Novels"
	CategoryOther       Category = "Other"
)

// Categories lists all known browsing categories in display order.
func Categories() []Category {
	return []Category{CategoryComics, CategoryHarryPotter, CategoryNovels, CategoryOther}
}

// Condition describes whether a book is sold new or secondhand.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Book is a sellable catalog item. Price is in minor currency units (paise).
// Stock is the maximum number of units purchasable at a time.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Category      Category  `json:"category"`
	Price         int64     `json:"price"`
	Condition     Condition `json:"condition"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Slug          string    `json:"slug"`
	Stock         int       `json:"stock"`
	Featured      bool      `json:"featured,omitempty"`
	Popular       bool      `json:"popular,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	Pages         int       `json:"pages,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}
