package supplements

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcervantes/pantrylog-backend/internal/catalog"
	"github.com/lcervantes/pantrylog-backend/pkg/db/models"
	pkgerrors "github.com/lcervantes/pantrylog-backend/pkg/errors"
)

const (
	nameSimilarityThreshold  = 0.8
	brandSimilarityThreshold = 0.7
)

// MatchSource names the product source a duplicate was found in.
type MatchSource string

const (
	// MatchSourceCatalog marks a duplicate from the DSLD catalog dataset.
	MatchSourceCatalog MatchSource = "dsld"
	// MatchSourceCustom marks a duplicate from the user's custom supplements.
	MatchSourceCustom MatchSource = "custom"
)

// DuplicateCandidate is the product descriptor being checked for duplicates.
type DuplicateCandidate struct {
	ProductName string `json:"product_name" validate:"required"`
	BrandName   string `json:"brand_name,omitempty"`
	UPCSku      string `json:"upc_sku,omitempty"`
}

// DuplicateMatch describes an existing record flagged as a likely duplicate.
type DuplicateMatch struct {
	Source      MatchSource `json:"source"`
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	BrandName   *string     `json:"brand_name,omitempty"`
	UPCSku      *string     `json:"upc_sku,omitempty"`
	ServingSize *string     `json:"serving_size,omitempty"`
	ProductType *string     `json:"product_type,omitempty"`
}

// DuplicateResult is the response shape of a duplicate check.
type DuplicateResult struct {
	HasDuplicates bool             `json:"has_duplicates"`
	Duplicates    []DuplicateMatch `json:"duplicates"`
	Message       string           `json:"message"`
}

type productCatalog interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// Detector flags likely duplicates of a candidate product against the DSLD
// catalog and the user's custom supplements.
type Detector struct {
	db      *gorm.DB
	catalog productCatalog
}

// NewDetector constructs a detector over the provided GORM DB and catalog.
func NewDetector(db *gorm.DB, products productCatalog) *Detector {
	return &Detector{db: db, catalog: products}
}

// FindDuplicates scores the candidate against every known product source. An
// exact case-insensitive UPC match is always a duplicate; otherwise a pair is
// flagged when the name similarity exceeds the name threshold and, when both
// sides carry a brand, the brand similarity exceeds its threshold.
func (d *Detector) FindDuplicates(ctx context.Context, userID uuid.UUID, candidate DuplicateCandidate) (*DuplicateResult, error) {
	candidate.ProductName = strings.TrimSpace(candidate.ProductName)
	if candidate.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name is required")
	}

	products, err := d.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	var customs []models.CustomSupplement
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&customs).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load custom supplements")
	}

	matches := []DuplicateMatch{}
	for i := range products {
		product := &products[i]
		if isDuplicate(candidate, product.FullName, product.BrandName, product.UPCSku) {
			matches = append(matches, DuplicateMatch{
				Source:      MatchSourceCatalog,
				ProductID:   product.ID,
				ProductName: product.FullName,
				BrandName:   ptrIfSet(product.BrandName),
				UPCSku:      ptrIfSet(product.UPCSku),
				ServingSize: ptrIfSet(product.ServingSize),
				ProductType: ptrIfSet(product.ProductType),
			})
		}
	}
	for i := range customs {
		custom := &customs[i]
		if isDuplicate(candidate, custom.ProductName, deref(custom.BrandName), deref(custom.UPCSku)) {
			matches = append(matches, DuplicateMatch{
				Source:      MatchSourceCustom,
				ProductID:   custom.ID.String(),
				ProductName: custom.ProductName,
				BrandName:   custom.BrandName,
				UPCSku:      custom.UPCSku,
				ServingSize: custom.ServingSize,
				ProductType: custom.ProductType,
			})
		}
	}

	message := "No duplicates found"
	if len(matches) > 0 {
		message = fmt.Sprintf("Found %d potential duplicate(s)", len(matches))
	}

	return &DuplicateResult{
		HasDuplicates: len(matches) > 0,
		Duplicates:    matches,
		Message:       message,
	}, nil
}

func isDuplicate(candidate DuplicateCandidate, knownName, knownBrand, knownUPC string) bool {
	candidateUPC := strings.TrimSpace(candidate.UPCSku)
	knownUPC = strings.TrimSpace(knownUPC)
	if candidateUPC != "" && knownUPC != "" && strings.EqualFold(candidateUPC, knownUPC) {
		return true
	}

	nameScore := Similarity(strings.ToLower(candidate.ProductName), strings.ToLower(strings.TrimSpace(knownName)))
	if nameScore <= nameSimilarityThreshold {
		return false
	}

	candidateBrand := strings.TrimSpace(candidate.BrandName)
	knownBrand = strings.TrimSpace(knownBrand)
	if candidateBrand != "" && knownBrand != "" {
		brandScore := Similarity(strings.ToLower(candidateBrand), strings.ToLower(knownBrand))
		return brandScore > brandSimilarityThreshold
	}

	return true
}

func ptrIfSet(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
