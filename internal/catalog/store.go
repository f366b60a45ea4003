package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

const (
	// MinQueryLength guards against scanning the dataset for one-character queries.
	MinQueryLength = 2
	// MaxResults caps how many products one search returns.
	MaxResults = 20
)

// Product is one record from the bundled DSLD dataset.
type Product struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	BrandName   string `json:"brandName,omitempty"`
	UPCSku      string `json:"upcSku,omitempty"`
	ProductType string `json:"productType,omitempty"`
	ServingSize string `json:"servingSize,omitempty"`
}

// Store searches the read-only product dataset: a directory of JSON files
// scanned at query time.
type Store struct {
	dir string
}

// NewStore builds a catalog store over the provided dataset directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Search returns up to MaxResults products whose name, brand, or UPC
// contains the query, case-insensitively.
func (s *Store) Search(ctx context.Context, query string) ([]Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < MinQueryLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query must be at least 2 characters")
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open catalog dataset")
	}

	results := []Product{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}

		products, err := readProducts(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// A single corrupt file should not take the search down.
			continue
		}
		for _, product := range products {
			if matches(product, query) {
				results = append(results, product)
				if len(results) >= MaxResults {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

// Products returns every product in the dataset. Callers that need to score
// the full catalog (duplicate detection) use this instead of Search.
func (s *Store) Products(ctx context.Context) ([]Product, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open catalog dataset")
	}

	products := []Product{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		fromFile, err := readProducts(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		products = append(products, fromFile...)
	}
	return products, nil
}

// readProducts accepts files holding either one product object or an array.
func readProducts(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []Product
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one Product
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []Product{one}, nil
}

func matches(product Product, query string) bool {
	return strings.Contains(strings.ToLower(product.FullName), query) ||
		strings.Contains(strings.ToLower(product.BrandName), query) ||
		strings.Contains(strings.ToLower(product.UPCSku), query)
}
