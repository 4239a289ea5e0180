package services

import "github.com/ersonp/climate-materials/internal/domain/entities"

// Billboard archives used for crop fields.
const (
	CropArchiveBatch  = 504
	CropArchiveSingle = 301
	CropArchiveWinter = 511
	CropRecordWinter  = 22
)

// CropKind distinguishes a lone crop billboard from a batched field.
type CropKind string

const (
	CropSingle CropKind = "single"
	CropBatch  CropKind = "batch"
)

// CropRecords returns the billboard refs for a crop field. The kind picks the
// archive. An initial record of 0 selects the first variant for a single
// billboard and every variant for a batch.
func CropRecords(kind CropKind, category entities.Category, isWinter bool, initialRecord int) []entities.ResourceRef {
	if isWinter {
		return []entities.ResourceRef{entities.Ref(CropArchiveWinter, CropRecordWinter, 0)}
	}

	first, second := cropVariants(category)
	mixed := initialRecord == 0

	var records []int
	switch {
	case first == second:
		records = []int{first}
	case kind == CropBatch && mixed:
		records = []int{first, second}
	case kind != CropBatch && mixed:
		records = []int{first}
	default:
		records = []int{second}
	}

	archive := CropArchiveSingle
	if kind == CropBatch {
		archive = CropArchiveBatch
	}

	refs := make([]entities.ResourceRef, len(records))
	for i, r := range records {
		refs[i] = entities.Ref(archive, r, 0)
	}
	return refs
}

// cropVariants returns the two record variants for a climate. Climates with a
// single variant return it twice.
func cropVariants(category entities.Category) (int, int) {
	switch category {
	case entities.CategoryMountain:
		return 0, 1
	case entities.CategoryDesert:
		return 2, 2
	case entities.CategoryDesert2:
		return 20, 20
	case entities.CategorySubtropical:
		return 3, 4
	case entities.CategoryRainforest, entities.CategorySwamp:
		return 7, 8
	default:
		return 19, 21
	}
}
