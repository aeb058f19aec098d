package category

import (
	"github.com/citypulse/citypoints-api/schema"
)

// presentFields lists the canonical fields that carry a truthy value in the
// given details. Empty strings, arrays and maps count as absent.
func presentFields(category schema.Category, details schema.PointDetails) map[string]bool {
	present := map[string]bool{}

	switch category {
	case schema.CategoryPharmacy:
		d := details.Pharmacy
		if d == nil {
			return present
		}
		if d.Name != nil && *d.Name != "" {
			present[FieldName] = true
		}
		if d.IsOpenNow != nil {
			present[FieldIsOpenNow] = true
		}
		if d.OpeningHours != nil && *d.OpeningHours != "" {
			present[FieldOpeningHours] = true
		}
		if d.PhoneNumber != nil && *d.PhoneNumber != "" {
			present[FieldPhoneNumber] = true
		}

	case schema.CategoryFuelStation:
		d := details.FuelStation
		if d == nil {
			return present
		}
		if d.Name != nil && *d.Name != "" {
			present[FieldName] = true
		}
		if d.HasFuelAvailable != nil {
			present[FieldHasFuelAvailable] = true
		}
		if len(d.FuelTypes) > 0 {
			present[FieldFuelTypes] = true
		}
		if len(d.PricesByFuel) > 0 {
			present[FieldPricesByFuel] = true
		}
		if d.OpeningHours != nil && *d.OpeningHours != "" {
			present[FieldOpeningHours] = true
		}

	case schema.CategoryMobileMoney:
		d := details.MobileMoney
		if d == nil {
			return present
		}
		if len(d.Providers) > 0 {
			present[FieldProviders] = true
		}
		if len(d.MerchantIDByProvider) > 0 {
			present[FieldMerchantIDByProvider] = true
		}
		if d.HasMin50000XafAvailable != nil {
			present[FieldHasMin50000Xaf] = true
		}
		if d.OpeningHours != nil && *d.OpeningHours != "" {
			present[FieldOpeningHours] = true
		}
	}

	return present
}

// ListCreateMissingFields returns the required fields a CREATE submission
// has not supplied. A non-empty result rejects the event.
func ListCreateMissingFields(category schema.Category, details schema.PointDetails) []string {
	present := presentFields(category, details)

	missing := []string{}
	for _, field := range requiredFields[category] {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// ListMissingFields returns the gaps: every enrichable field of the
// category without a truthy value yet.
func ListMissingFields(category schema.Category, details schema.PointDetails) []string {
	present := presentFields(category, details)

	missing := []string{}
	for _, field := range enrichableFields[category] {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// EligibleEnrichFields intersects the fields supplied by a normalized
// enrich payload with the current gaps of the target point. An ENRICH event
// with an empty result is rejected: it would add nothing the log does not
// already know.
func EligibleEnrichFields(category schema.Category, supplied []string, gaps []string) []string {
	gapSet := map[string]bool{}
	for _, g := range gaps {
		gapSet[g] = true
	}

	eligible := []string{}
	for _, f := range supplied {
		if gapSet[CanonicalField(f)] {
			eligible = append(eligible, CanonicalField(f))
		}
	}
	return eligible
}
