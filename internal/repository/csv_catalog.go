package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"StockSense/internal/domain/models"
	applogger "StockSense/pkg/logger"
)

const (
	symbolColumn = "SYMBOL"
	nameColumn   = "NAME OF COMPANY"
)

// CSVCatalog is the listing file loaded once at start.
type CSVCatalog struct {
	listings []models.Listing
}

// LoadCSVCatalog reads path. A missing file yields an empty catalog.
func LoadCSVCatalog(path string, logger *applogger.Logger) (*CSVCatalog, error) {
	if logger == nil {
		logger = applogger.Nop()
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("stock catalog not found; search disabled", applogger.String("path", path))
		return &CSVCatalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	listings, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	logger.Info("stock catalog loaded", applogger.String("path", path), applogger.Int("listings", len(listings)))
	return &CSVCatalog{listings: listings}, nil
}

// ParseCatalog reads SYMBOL and NAME OF COMPANY columns; header names are matched
// after trimming.
func ParseCatalog(r io.Reader) ([]models.Listing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	symIdx, nameIdx := -1, -1
	for i, h := range header {
		switch strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case symbolColumn:
			symIdx = i
		case nameColumn:
			nameIdx = i
		}
	}
	if symIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("missing %q or %q column", symbolColumn, nameColumn)
	}

	var out []models.Listing
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if symIdx >= len(rec) || nameIdx >= len(rec) {
			continue
		}
		sym := strings.TrimSpace(rec[symIdx])
		if sym == "" {
			continue
		}
		out = append(out, models.Listing{Symbol: sym, Name: strings.TrimSpace(rec[nameIdx])})
	}
}

func (c *CSVCatalog) Listings() []models.Listing { return c.listings }
