// assets/embed.go
//
// Embedded puzzle catalog used when no WAFFLE_FILE is configured.

package assets

import (
	"embed"
	"io"
)

//go:embed waffles.txt
var FS embed.FS

// DefaultCatalogName is the name of the embedded catalog file.
const DefaultCatalogName = "waffles.txt"

// OpenCatalog opens the embedded puzzle catalog.
func OpenCatalog() (io.ReadCloser, error) {
	return FS.Open(DefaultCatalogName)
}
