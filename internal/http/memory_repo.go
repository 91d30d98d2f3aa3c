package httpapi

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/homematch-ph/listing-recommender/internal/domain"
	"github.com/homematch-ph/listing-recommender/internal/recommend"
)

// MemoryListingsRepo is a slice-backed ListingsRepo for tests and
// database-free runs.
type MemoryListingsRepo struct {
	mu       sync.RWMutex
	listings []domain.Listing
}

func NewMemoryListingsRepo(seed []domain.Listing) *MemoryListingsRepo {
	return &MemoryListingsRepo{listings: append([]domain.Listing(nil), seed...)}
}

func (r *MemoryListingsRepo) List(ctx context.Context, p ListParams) ([]domain.Listing, int, error) {
	minPrice, _ := strconv.ParseInt(p.MinPrice, 10, 64)
	maxPrice, _ := strconv.ParseInt(p.MaxPrice, 10, 64)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Listing
	for _, l := range r.listings {
		if p.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(p.Location)) {
			continue
		}
		price := recommend.ParseCurrencyMajorUnits(l.Price)
		if minPrice > 0 && price < minPrice {
			continue
		}
		if maxPrice > 0 && price > maxPrice {
			continue
		}
		if p.Furnishing != "" && l.Furnishing != p.Furnishing {
			continue
		}
		matched = append(matched, l)
	}

	switch p.Sort {
	case "price_asc":
		sort.SliceStable(matched, func(i, j int) bool {
			return recommend.ParseCurrencyMajorUnits(matched[i].Price) < recommend.ParseCurrencyMajorUnits(matched[j].Price)
		})
	case "price_desc":
		sort.SliceStable(matched, func(i, j int) bool {
			return recommend.ParseCurrencyMajorUnits(matched[i].Price) > recommend.ParseCurrencyMajorUnits(matched[j].Price)
		})
	}

	total := len(matched)
	offset := p.Offset
	if offset > total {
		offset = total
	}
	end := offset + p.Limit
	if p.Limit <= 0 || end > total {
		end = total
	}
	return append([]domain.Listing(nil), matched[offset:end]...), total, nil
}

func (r *MemoryListingsRepo) Get(ctx context.Context, id string) (domain.Listing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			return l, true, nil
		}
	}
	return domain.Listing{}, false, nil
}

func (r *MemoryListingsRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = "lst-" + uuid.NewString()
	}
	r.listings = append(r.listings, l)
	return l, nil
}

func (r *MemoryListingsRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryListingsRepo) All(ctx context.Context) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Listing(nil), r.listings...), nil
}
