package catalogfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/yamlfile"
)

// Options configures how catalog files are read
type Options struct {
	Workbook        xlsx.Options
	DefaultPriority int
}

// LoaderFor picks the catalog loader matching the file extension. A directory
// is read as a pair of CSV files.
func LoaderFor(path string, opts Options, log *logger.Logger) (repositories.CatalogLoader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return csv.NewLoader(opts.DefaultPriority), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		wb := opts.Workbook
		if wb.DefaultPriority == 0 {
			wb.DefaultPriority = opts.DefaultPriority
		}
		return xlsx.NewLoader(wb, log), nil
	case ".yaml", ".yml":
		return yamlfile.NewLoader(opts.DefaultPriority), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (expected .xlsx, .yaml, .yml or a CSV directory)", filepath.Ext(path))
	}
}

// Open loads the catalog at path into in-memory repositories
func Open(path string, opts Options, log *logger.Logger) (*memory.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("no catalog file configured")
	}

	loader, err := LoaderFor(path, opts, log)
	if err != nil {
		return nil, err
	}
	data, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	catalog, err := memory.NewCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}
