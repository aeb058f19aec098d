package category

import (
	"fmt"
	"strings"

	"github.com/citypulse/citypoints-api/schema"
)

var ErrUnknownCategory = fmt.Errorf("unknown category")

// NormalizeDetails folds a raw submission field bag into the typed details
// of the category: legacy aliases become canonical fields, free-text fuel
// availability derives a boolean when no explicit one is present, and a
// flat price/fuelType pair folds into pricesByFuel. It returns the details
// and the list of canonical fields that ended up with a truthy value.
func NormalizeDetails(category schema.Category, raw map[string]interface{}) (schema.PointDetails, []string, error) {
	if !category.Valid() {
		return schema.PointDetails{}, nil, ErrUnknownCategory
	}

	canonical := map[string]interface{}{}
	for key, value := range raw {
		canonical[CanonicalField(key)] = value
	}

	var details schema.PointDetails
	switch category {
	case schema.CategoryPharmacy:
		details.Pharmacy = normalizePharmacy(canonical)
	case schema.CategoryFuelStation:
		details.FuelStation = normalizeFuelStation(canonical)
	case schema.CategoryMobileMoney:
		details.MobileMoney = normalizeMobileMoney(canonical)
	}

	present := presentFields(category, details)
	supplied := []string{}
	for _, field := range enrichableFields[category] {
		if present[field] {
			supplied = append(supplied, field)
		}
	}

	return details, supplied, nil
}

func normalizePharmacy(raw map[string]interface{}) *schema.PharmacyDetails {
	d := &schema.PharmacyDetails{}
	if s, ok := asString(raw[FieldName]); ok {
		d.Name = &s
	}
	if b, ok := asBool(raw[FieldIsOpenNow]); ok {
		d.IsOpenNow = &b
	}
	if s, ok := asString(raw[FieldOpeningHours]); ok {
		d.OpeningHours = &s
	}
	if s, ok := asString(raw[FieldPhoneNumber]); ok {
		d.PhoneNumber = &s
	}
	return d
}

func normalizeFuelStation(raw map[string]interface{}) *schema.FuelStationDetails {
	d := &schema.FuelStationDetails{}
	if s, ok := asString(raw[FieldName]); ok {
		d.Name = &s
	}
	if b, ok := asBool(raw[FieldHasFuelAvailable]); ok {
		d.HasFuelAvailable = &b
	} else if availability, ok := asString(raw["availability"]); ok {
		b := deriveAvailability(availability)
		d.HasFuelAvailable = &b
	}
	if types, ok := asStringSlice(raw[FieldFuelTypes]); ok {
		d.FuelTypes = types
	}
	if prices, ok := asFloatMap(raw[FieldPricesByFuel]); ok {
		d.PricesByFuel = prices
	}
	if price, ok := asFloat(raw["price"]); ok {
		if fuelType, ok := asString(raw["fuelType"]); ok {
			if d.PricesByFuel == nil {
				d.PricesByFuel = map[string]float64{}
			}
			d.PricesByFuel[fuelType] = price
		}
	}
	if s, ok := asString(raw[FieldOpeningHours]); ok {
		d.OpeningHours = &s
	}
	return d
}

func normalizeMobileMoney(raw map[string]interface{}) *schema.MobileMoneyDetails {
	d := &schema.MobileMoneyDetails{}
	if providers, ok := asStringSlice(raw[FieldProviders]); ok {
		d.Providers = providers
	}
	if merchants, ok := asStringMap(raw[FieldMerchantIDByProvider]); ok {
		d.MerchantIDByProvider = merchants
	} else if id, ok := asString(raw[FieldMerchantIDByProvider]); ok {
		// legacy merchantId: a bare id belongs to the first listed
		// provider. Without one the id is kept unattributed rather than
		// dropped; a later event naming the provider merges it properly.
		provider := UnattributedProvider
		if len(d.Providers) > 0 {
			provider = d.Providers[0]
		}
		d.MerchantIDByProvider = map[string]string{provider: id}
	}
	if b, ok := asBool(raw[FieldHasMin50000Xaf]); ok {
		d.HasMin50000XafAvailable = &b
	}
	if s, ok := asString(raw[FieldOpeningHours]); ok {
		d.OpeningHours = &s
	}
	return d
}

// deriveAvailability reads a free-text availability report. Phrases that
// say the station ran dry derive false; any other non-empty report counts
// as fuel on hand.
func deriveAvailability(availability string) bool {
	lowered := strings.ToLower(availability)
	for _, marker := range []string{"out", "no ", "none", "empty"} {
		if strings.Contains(lowered, marker) {
			return false
		}
	}
	return true
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		if len(items) == 0 {
			return nil, false
		}
		return items, true
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func asFloatMap(v interface{}) (map[string]float64, bool) {
	switch m := v.(type) {
	case map[string]float64:
		if len(m) == 0 {
			return nil, false
		}
		return m, true
	case map[string]interface{}:
		out := map[string]float64{}
		for key, value := range m {
			if n, ok := asFloat(value); ok {
				out[key] = n
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func asStringMap(v interface{}) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		if len(m) == 0 {
			return nil, false
		}
		return m, true
	case map[string]interface{}:
		out := map[string]string{}
		for key, value := range m {
			if s, ok := value.(string); ok && s != "" {
				out[key] = s
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}
