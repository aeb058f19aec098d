package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citypulse/citypoints-api/schema"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestListCreateMissingFieldsFuelStation(t *testing.T) {
	details := schema.PointDetails{
		FuelStation: &schema.FuelStationDetails{Name: strPtr("X")},
	}

	missing := ListCreateMissingFields(schema.CategoryFuelStation, details)
	assert.Contains(t, missing, FieldHasFuelAvailable)
	assert.NotContains(t, missing, FieldName)
}

func TestListCreateMissingFieldsMobileMoneyComplete(t *testing.T) {
	details := schema.PointDetails{
		MobileMoney: &schema.MobileMoneyDetails{Providers: []string{"MTN"}},
	}

	missing := ListCreateMissingFields(schema.CategoryMobileMoney, details)
	assert.Empty(t, missing)
}

func TestListCreateMissingFieldsPharmacy(t *testing.T) {
	missing := ListCreateMissingFields(schema.CategoryPharmacy, schema.PointDetails{})
	assert.Equal(t, []string{FieldName, FieldIsOpenNow}, missing)
}

func TestListCreateMissingFieldsEmptyStringCountsAsAbsent(t *testing.T) {
	details := schema.PointDetails{
		Pharmacy: &schema.PharmacyDetails{
			Name:      strPtr(""),
			IsOpenNow: boolPtr(true),
		},
	}

	missing := ListCreateMissingFields(schema.CategoryPharmacy, details)
	assert.Equal(t, []string{FieldName}, missing)
}

func TestListMissingFieldsGaps(t *testing.T) {
	details := schema.PointDetails{
		FuelStation: &schema.FuelStationDetails{
			Name:             strPtr("Total Bonamoussadi"),
			HasFuelAvailable: boolPtr(true),
		},
	}

	gaps := ListMissingFields(schema.CategoryFuelStation, details)
	assert.Contains(t, gaps, FieldFuelTypes)
	assert.Contains(t, gaps, FieldPricesByFuel)
	assert.Contains(t, gaps, FieldOpeningHours)
	assert.NotContains(t, gaps, FieldName)
	assert.NotContains(t, gaps, FieldHasFuelAvailable)
}

func TestListMissingFieldsFalseBooleanIsPresent(t *testing.T) {
	details := schema.PointDetails{
		FuelStation: &schema.FuelStationDetails{
			HasFuelAvailable: boolPtr(false),
		},
	}

	gaps := ListMissingFields(schema.CategoryFuelStation, details)
	assert.NotContains(t, gaps, FieldHasFuelAvailable)
}

func TestIsEnrichFieldAllowedAliases(t *testing.T) {
	assert.True(t, IsEnrichFieldAllowed(schema.CategoryPharmacy, "hours"))
	assert.True(t, IsEnrichFieldAllowed(schema.CategoryPharmacy, FieldOpeningHours))
	assert.True(t, IsEnrichFieldAllowed(schema.CategoryMobileMoney, "merchantId"))
	assert.True(t, IsEnrichFieldAllowed(schema.CategoryMobileMoney, "hasCashAvailable"))
}

func TestIsEnrichFieldAllowedCategoryMembership(t *testing.T) {
	assert.False(t, IsEnrichFieldAllowed(schema.CategoryPharmacy, FieldFuelTypes))
	assert.False(t, IsEnrichFieldAllowed(schema.CategoryFuelStation, FieldProviders))
	assert.False(t, IsEnrichFieldAllowed(schema.CategoryMobileMoney, "nonsense"))
}

func TestEligibleEnrichFields(t *testing.T) {
	gaps := []string{FieldFuelTypes, FieldPricesByFuel}

	eligible := EligibleEnrichFields(schema.CategoryFuelStation, []string{FieldFuelTypes, FieldName}, gaps)
	assert.Equal(t, []string{FieldFuelTypes}, eligible)

	assert.Empty(t, EligibleEnrichFields(schema.CategoryFuelStation, []string{FieldName}, gaps))
}
