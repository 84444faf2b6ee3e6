package internal

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Catalog records completed conversions in SQLite.
type Catalog struct {
	*sqlx.DB
}

// NewCatalog opens (or creates) a conversion catalog at path. An empty path
// opens an in-memory catalog that is discarded when the process exits.
func NewCatalog(path string) (*Catalog, error) {
	dsn := path
	if dsn == "" {
		// Pin to a single connection — each :memory: connection is a
		// separate database, so connection pooling must be disabled.
		dsn = "file::memory:?_pragma=temp_store(2)&_pragma=journal_mode(off)&_pragma=synchronous(off)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	cat := &Catalog{DB: db}
	if err := cat.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}

	slog.Debug("catalog initialized", "path", path)
	return cat, nil
}

func (c *Catalog) initSchema() error {
	_, err := c.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			input_path   text NOT NULL,
			output_path  text NOT NULL,
			root_tag     text NOT NULL,
			columns      integer NOT NULL,
			csv_sha256   text NOT NULL,
			converted_at timestamp NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating conversions table: %w", err)
	}

	_, err = c.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions (input_path);
	`)
	if err != nil {
		return fmt.Errorf("creating input path index on conversions table: %w", err)
	}
	return nil
}

// InsertConversion inserts a new conversion record into the catalog.
func (c *Catalog) InsertConversion(rec ConversionRecord) error {
	_, err := c.NamedExec(`
		INSERT INTO conversions (input_path, output_path, root_tag, columns, csv_sha256, converted_at)
		VALUES (:input_path, :output_path, :root_tag, :columns, :csv_sha256, :converted_at)
	`, rec)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// GetAllConversions returns all conversion records, newest first.
func (c *Catalog) GetAllConversions() ([]ConversionRecord, error) {
	var recs []ConversionRecord
	err := c.Select(&recs, "SELECT * FROM conversions ORDER BY converted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("getting conversions: %w", err)
	}
	return recs, nil
}

// GetConversionsByInput returns conversion records for one input path,
// newest first.
func (c *Catalog) GetConversionsByInput(inputPath string) ([]ConversionRecord, error) {
	var recs []ConversionRecord
	err := c.Select(&recs, "SELECT * FROM conversions WHERE input_path = ? ORDER BY converted_at DESC", inputPath)
	if err != nil {
		return nil, fmt.Errorf("getting conversions for %s: %w", inputPath, err)
	}
	return recs, nil
}

// CountConversions returns the total number of catalog records.
func (c *Catalog) CountConversions() (int, error) {
	var count int
	if err := c.Get(&count, "SELECT COUNT(*) FROM conversions"); err != nil {
		return 0, fmt.Errorf("counting conversions: %w", err)
	}
	return count, nil
}
