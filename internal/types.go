package internal

// Config holds the runtime application configuration
type Config struct {
	InputPath  string
	BlockTypes []string
	OutDir     string
	Catalog    *Catalog
}

// ConversionRecord encodes one completed conversion and its metadata
type ConversionRecord struct {
	InputPath   string `db:"input_path"`
	OutputPath  string `db:"output_path"`
	RootTag     string `db:"root_tag"`
	Columns     int    `db:"columns"`
	CSVSHA256   string `db:"csv_sha256"`
	ConvertedAt string `db:"converted_at"`
}
