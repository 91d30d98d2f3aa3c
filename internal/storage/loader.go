package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

// LoadListingsFromFile reads the seed inventory from a JSON file.
func LoadListingsFromFile(path string) ([]domain.Listing, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}

	var listings []domain.Listing
	if err := json.Unmarshal(b, &listings); err != nil {
		return nil, fmt.Errorf("unmarshal listings: %w", err)
	}
	return listings, nil
}
