package storage

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/homematch-ph/listing-recommender/internal/domain"
	"github.com/homematch-ph/listing-recommender/internal/recommend"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// EnsureSchema creates the listings table. price keeps the formatted
// string as entered; price_value is its parsed major-unit integer so
// SQL can filter and sort numerically.
func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  location TEXT NOT NULL,
  price TEXT NOT NULL,
  price_value INTEGER NOT NULL DEFAULT 0,
  description TEXT NOT NULL DEFAULT '',
  furnishing TEXT NOT NULL DEFAULT '',
  amenities_json TEXT NOT NULL DEFAULT '[]',
  image_urls_json TEXT NOT NULL DEFAULT '[]'
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_listings_location ON listings(location);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_listings_price_value ON listings(price_value);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountListings() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&n)
	return n, err
}

// UpsertMany seeds the initial dataset idempotently by id.
func (s *SQLiteStore) UpsertMany(items []domain.Listing) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO listings
(id, title, location, price, price_value, description, furnishing, amenities_json, image_urls_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range items {
		am, _ := json.Marshal(l.Amenities)
		img, _ := json.Marshal(l.ImageURLs)
		if _, err := stmt.Exec(
			l.ID, l.Title, l.Location, l.Price, recommend.ParseCurrencyMajorUnits(l.Price),
			l.Description, l.Furnishing, string(am), string(img),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateListing(l domain.Listing) (domain.Listing, error) {
	if l.ID == "" {
		l.ID = "lst-" + uuid.NewString()
	}
	am, _ := json.Marshal(l.Amenities)
	img, _ := json.Marshal(l.ImageURLs)

	_, err := s.db.Exec(`
INSERT INTO listings
(id, title, location, price, price_value, description, furnishing, amenities_json, image_urls_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		l.ID, l.Title, l.Location, l.Price, recommend.ParseCurrencyMajorUnits(l.Price),
		l.Description, l.Furnishing, string(am), string(img),
	)
	return l, err
}

func (s *SQLiteStore) DeleteListing(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (s *SQLiteStore) GetListing(id string) (domain.Listing, bool, error) {
	row := s.db.QueryRow(`
SELECT id, title, location, price, description, furnishing, amenities_json, image_urls_json
FROM listings WHERE id = ?
`, id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return domain.Listing{}, false, nil
	}
	if err != nil {
		return domain.Listing{}, false, err
	}
	return l, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(r rowScanner) (domain.Listing, error) {
	var l domain.Listing
	var amJSON, imgJSON string
	if err := r.Scan(
		&l.ID, &l.Title, &l.Location, &l.Price,
		&l.Description, &l.Furnishing, &amJSON, &imgJSON,
	); err != nil {
		return domain.Listing{}, err
	}
	_ = json.Unmarshal([]byte(amJSON), &l.Amenities)
	_ = json.Unmarshal([]byte(imgJSON), &l.ImageURLs)
	return l, nil
}

// ListFilter narrows and orders ListListings results.
type ListFilter struct {
	Location   string // contains, case-insensitive
	MinPrice   int64
	MaxPrice   int64
	Furnishing string
	Sort       string // "price_asc" or "price_desc"
}

func (s *SQLiteStore) ListListings(limit, offset int, f ListFilter) ([]domain.Listing, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if strings.TrimSpace(f.Location) != "" {
		where = append(where, "LOWER(location) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Location)
	}
	if f.MinPrice > 0 {
		where = append(where, "price_value >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where = append(where, "price_value <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.Furnishing != "" {
		where = append(where, "furnishing = ?")
		args = append(args, f.Furnishing)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch f.Sort {
	case "price_asc":
		orderSQL = "ORDER BY price_value ASC"
	case "price_desc":
		orderSQL = "ORDER BY price_value DESC"
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM listings "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsSQL := `
SELECT id, title, location, price, description, furnishing, amenities_json, image_urls_json
FROM listings
` + whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"

	rowsArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AllListings returns the full inventory in insertion-id order, the
// input to a recommendation pass.
func (s *SQLiteStore) AllListings() ([]domain.Listing, error) {
	rows, err := s.db.Query(`
SELECT id, title, location, price, description, furnishing, amenities_json, image_urls_json
FROM listings ORDER BY id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
