package seed

import "context"

// Record is one raw product entry from a seed file: the six-key wire mapping
// consumed by Product.Deserialize. Records are validated at insert time, not
// at load time, so one bad line is reported against its line number.
type Record map[string]any

// Loader defines the interface for loading catalogue seed files. A seed file
// is gzipped JSON lines, one product record per line.
type Loader interface {
	// Load reads a gzipped seed file and returns its product records.
	Load(ctx context.Context, path string) ([]Record, error)
}
