package storage

import (
	"path/filepath"
	"testing"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestUpsertManyIsIdempotent(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	seed := []domain.Listing{
		{ID: "lst-1", Title: "A", Location: "Makati", Price: "₱3,000,000"},
		{ID: "lst-2", Title: "B", Location: "Cebu", Price: "₱5,500,000"},
	}
	if err := s.UpsertMany(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.UpsertMany(seed); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	n, err := s.CountListings()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count=%d want 2", n)
	}
}

func TestCreateAssignsIDAndRoundTrips(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	created, err := s.CreateListing(domain.Listing{
		Title:      "Condo",
		Location:   "Quezon City",
		Price:      "₱2,400,000",
		Furnishing: domain.FurnishingSemi,
		Amenities:  []string{"Parking", "Gym"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}

	got, ok, err := s.GetListing(created.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Price != "₱2,400,000" || got.Furnishing != domain.FurnishingSemi {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Amenities) != 2 {
		t.Fatalf("amenities=%v want 2 entries", got.Amenities)
	}
}

func TestListListingsFiltersOnParsedPrice(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	seed := []domain.Listing{
		{ID: "lst-1", Title: "A", Location: "Quezon City", Price: "₱2,200,000"},
		{ID: "lst-2", Title: "B", Location: "Quezon City, Diliman", Price: "₱4,800,000"},
		{ID: "lst-3", Title: "C", Location: "Cebu", Price: "₱6,000,000"},
	}
	if err := s.UpsertMany(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, total, err := s.ListListings(20, 0, ListFilter{
		Location: "quezon",
		MinPrice: 4_000_000,
		Sort:     "price_desc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].Title != "B" {
		t.Fatalf("got total=%d items=%+v, want single B", total, got)
	}

	_, total, err = s.ListListings(20, 0, ListFilter{MaxPrice: 5_000_000})
	if err != nil {
		t.Fatalf("list max price: %v", err)
	}
	if total != 2 {
		t.Fatalf("max price total=%d want 2", total)
	}
}

func TestDeleteListing(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	if err := s.UpsertMany([]domain.Listing{{ID: "lst-1", Title: "A", Location: "Makati", Price: "₱3,000,000"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ok, err := s.DeleteListing("lst-1")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.DeleteListing("lst-1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Fatal("second delete reported success")
	}
}
