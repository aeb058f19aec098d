package category

import (
	"github.com/citypulse/citypoints-api/schema"
)

// Canonical field names. Every rule table and every merge/gap computation
// speaks in these names only; legacy aliases are folded in before any check.
const (
	FieldName                 = "name"
	FieldIsOpenNow            = "isOpenNow"
	FieldOpeningHours         = "openingHours"
	FieldPhoneNumber          = "phoneNumber"
	FieldHasFuelAvailable     = "hasFuelAvailable"
	FieldFuelTypes            = "fuelTypes"
	FieldPricesByFuel         = "pricesByFuel"
	FieldProviders            = "providers"
	FieldMerchantIDByProvider = "merchantIdByProvider"
	FieldHasMin50000Xaf       = "hasMin50000XafAvailable"
)

// UnattributedProvider keys a legacy bare merchant id that arrived without
// a provider list.
const UnattributedProvider = "unattributed"

// aliases is the single translation table for legacy field names. Both the
// normalizer and the enrich allowlist consume it, so the two cannot drift.
var aliases = map[string]string{
	"hours":            FieldOpeningHours,
	"merchantId":       FieldMerchantIDByProvider,
	"hasCashAvailable": FieldHasMin50000Xaf,
}

var requiredFields = map[schema.Category][]string{
	schema.CategoryPharmacy:    {FieldName, FieldIsOpenNow},
	schema.CategoryFuelStation: {FieldName, FieldHasFuelAvailable},
	schema.CategoryMobileMoney: {FieldProviders},
}

var enrichableFields = map[schema.Category][]string{
	schema.CategoryPharmacy: {
		FieldName,
		FieldIsOpenNow,
		FieldOpeningHours,
		FieldPhoneNumber,
	},
	schema.CategoryFuelStation: {
		FieldName,
		FieldHasFuelAvailable,
		FieldFuelTypes,
		FieldPricesByFuel,
		FieldOpeningHours,
	},
	schema.CategoryMobileMoney: {
		FieldProviders,
		FieldMerchantIDByProvider,
		FieldHasMin50000Xaf,
		FieldOpeningHours,
	},
}

// CanonicalField folds a legacy alias into its canonical name. Unknown
// names pass through unchanged.
func CanonicalField(field string) string {
	if canonical, ok := aliases[field]; ok {
		return canonical
	}
	return field
}

// IsEnrichFieldAllowed reports whether a field (canonical or legacy alias)
// is enrichable for the given category.
func IsEnrichFieldAllowed(category schema.Category, field string) bool {
	canonical := CanonicalField(field)
	for _, f := range enrichableFields[category] {
		if f == canonical {
			return true
		}
	}
	return false
}
