package usecase

import (
	"strings"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
)

const searchLimit = 10

type SearchUseCase struct {
	catalog domrepo.Catalog
}

func NewSearchUseCase(catalog domrepo.Catalog) *SearchUseCase {
	return &SearchUseCase{catalog: catalog}
}

// Search matches q case-insensitively against "symbol name" and returns the first
// ten listings in catalog order.
func (uc *SearchUseCase) Search(q string) []models.Listing {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Listing, 0, searchLimit)
	if q == "" {
		return out
	}
	for _, l := range uc.catalog.Listings() {
		if strings.Contains(strings.ToLower(l.Symbol+" "+l.Name), q) {
			out = append(out, l)
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out
}
