package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// SearchService matches a free-text term against active restaurants and
// their nested categories and menu items. It is read-only and shares no
// state between calls.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// RestaurantMatches is the single matching rule both search phases agree on:
// term is a case-insensitive substring of the restaurant's name, slug,
// country, food type or address, or of any category or menu item name. The
// in-memory application of this predicate is the ground truth for results.
func RestaurantMatches(r *models.Restaurant, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return false
	}
	for _, field := range []string{r.Name, r.Slug, r.Country, r.FoodType, r.Address} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, category := range r.Categories {
		if strings.Contains(strings.ToLower(category.Name), needle) {
			return true
		}
		for _, item := range category.MenuItems {
			if strings.Contains(strings.ToLower(item.Name), needle) {
				return true
			}
		}
	}
	return false
}

// SearchRestaurants returns the distinct active restaurants matching term,
// sorted by (name, id) so repeated calls over the same data are reproducible.
// An empty or whitespace-only term returns no results by design; browsing
// everything goes through the listing endpoint, not search.
//
// The candidate fetch loads every active restaurant with its categories and
// items preloaded; membership is decided entirely by the shared predicate
// applied in memory. Filtering in SQL would fold case with the database's
// LOWER, which diverges from Go's folding outside ASCII and can exclude rows
// the predicate accepts, so the fetch never filters on the term.
func (s *SearchService) SearchRestaurants(ctx context.Context, term string) ([]models.Restaurant, error) {
	if strings.TrimSpace(term) == "" {
		return []models.Restaurant{}, nil
	}

	var candidates []models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		}).
		Preload("Categories.MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("name")
		}).
		Where("is_active = ?", true).
		Find(&candidates).Error
	if err != nil {
		return nil, errs.Store(err)
	}

	seen := make(map[uuid.UUID]bool, len(candidates))
	results := make([]models.Restaurant, 0, len(candidates))
	for i := range candidates {
		r := candidates[i]
		if seen[r.ID] || !RestaurantMatches(&r, term) {
			continue
		}
		seen[r.ID] = true
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].ID.String() < results[j].ID.String()
	})

	return results, nil
}
