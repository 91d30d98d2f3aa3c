package httpapi

import (
	"context"
	"strconv"

	"github.com/homematch-ph/listing-recommender/internal/domain"
	"github.com/homematch-ph/listing-recommender/internal/storage"
)

// SQLiteListingsRepo adapts the SQLite store to the ListingsRepo
// interface the server works against.
type SQLiteListingsRepo struct {
	Store *storage.SQLiteStore
}

func (r *SQLiteListingsRepo) List(ctx context.Context, p ListParams) ([]domain.Listing, int, error) {
	minPrice, _ := strconv.ParseInt(p.MinPrice, 10, 64)
	maxPrice, _ := strconv.ParseInt(p.MaxPrice, 10, 64)

	return r.Store.ListListings(p.Limit, p.Offset, storage.ListFilter{
		Location:   p.Location,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Furnishing: p.Furnishing,
		Sort:       p.Sort,
	})
}

func (r *SQLiteListingsRepo) Get(ctx context.Context, id string) (domain.Listing, bool, error) {
	return r.Store.GetListing(id)
}

func (r *SQLiteListingsRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	return r.Store.CreateListing(l)
}

func (r *SQLiteListingsRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.Store.DeleteListing(id)
}

func (r *SQLiteListingsRepo) All(ctx context.Context) ([]domain.Listing, error) {
	return r.Store.AllListings()
}
