// Package categorize maps free-form cost tags into the closed six-bucket
// taxonomy used by every report. The mapping is total: any input lands in
// exactly one bucket.
package categorize

import (
	"strings"

	"github.com/drillops/corecost/pkg/models/domain"
)

var tagBuckets = map[string]domain.CanonicalCategory{
	"labor":             domain.CategoryLabor,
	"equipment":         domain.CategoryEquipment,
	"maintenance":       domain.CategoryEquipment,
	"transport":         domain.CategoryTransport,
	"utilities":         domain.CategoryOverhead,
	"office_supplies":   domain.CategoryOverhead,
	"insurance":         domain.CategoryOverhead,
	"permits":           domain.CategoryOverhead,
	"professional_fees": domain.CategoryOverhead,
}

// Categorize resolves the canonical bucket for a cost record. Inventory
// movements and purchase orders are material consumption regardless of their
// tag; expense tags go through the bucket table with "other" as the default.
func Categorize(kind domain.CostSourceKind, tag string) domain.CanonicalCategory {
	if kind == domain.SourceInventory || kind == domain.SourcePurchaseOrder {
		return domain.CategoryMaterials
	}
	if bucket, ok := tagBuckets[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return bucket
	}
	return domain.CategoryOther
}

// CategorizeEvent is a convenience wrapper over Categorize.
func CategorizeEvent(ev domain.CostEvent) domain.CanonicalCategory {
	return Categorize(ev.SourceKind, ev.Category)
}
