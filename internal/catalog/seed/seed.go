// Package seed holds the static book catalog bundled into the binary.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/pkg/slug"
)

//go:embed books.json
var booksJSON []byte

// Books decodes the embedded catalog. Order in the file is the storefront's
// relevance order. Slugs missing from the data are derived from title and
// author.
func Books() ([]domain.Book, error) {
	var books []domain.Book
	if err := json.Unmarshal(booksJSON, &books); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(books))
	for i := range books {
		if books[i].ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := seen[books[i].ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", books[i].ID)
		}
		seen[books[i].ID] = struct{}{}

		if books[i].Slug == "" {
			books[i].Slug = slug.Generate(books[i].Title, books[i].Author)
		}
	}

	return books, nil
}
