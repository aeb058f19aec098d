package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citypulse/citypoints-api/schema"
)

func TestNormalizeDetailsUnknownCategory(t *testing.T) {
	_, _, err := NormalizeDetails(schema.Category("bakery"), nil)
	assert.Equal(t, ErrUnknownCategory, err)
}

func TestNormalizePharmacyAliases(t *testing.T) {
	details, supplied, err := NormalizeDetails(schema.CategoryPharmacy, map[string]interface{}{
		"name":      "Pharmacie du Rond-Point",
		"isOpenNow": true,
		"hours":     "08:00-22:00",
	})

	assert.NoError(t, err)
	assert.NotNil(t, details.Pharmacy)
	assert.Equal(t, "Pharmacie du Rond-Point", *details.Pharmacy.Name)
	assert.True(t, *details.Pharmacy.IsOpenNow)
	assert.Equal(t, "08:00-22:00", *details.Pharmacy.OpeningHours)
	assert.Contains(t, supplied, FieldOpeningHours)
}

func TestNormalizeFuelAvailabilityDerivesFalse(t *testing.T) {
	details, _, err := NormalizeDetails(schema.CategoryFuelStation, map[string]interface{}{
		"name":         "Total",
		"availability": "ran out this morning",
	})

	assert.NoError(t, err)
	assert.NotNil(t, details.FuelStation.HasFuelAvailable)
	assert.False(t, *details.FuelStation.HasFuelAvailable)
}

func TestNormalizeFuelAvailabilityDerivesTrue(t *testing.T) {
	details, _, err := NormalizeDetails(schema.CategoryFuelStation, map[string]interface{}{
		"availability": "plenty at the pump",
	})

	assert.NoError(t, err)
	assert.True(t, *details.FuelStation.HasFuelAvailable)
}

func TestNormalizeExplicitBooleanBeatsAvailability(t *testing.T) {
	details, _, err := NormalizeDetails(schema.CategoryFuelStation, map[string]interface{}{
		"hasFuelAvailable": true,
		"availability":     "out of stock",
	})

	assert.NoError(t, err)
	assert.True(t, *details.FuelStation.HasFuelAvailable)
}

func TestNormalizePriceFuelTypePairFolds(t *testing.T) {
	details, supplied, err := NormalizeDetails(schema.CategoryFuelStation, map[string]interface{}{
		"price":    845.0,
		"fuelType": "Super",
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"Super": 845}, details.FuelStation.PricesByFuel)
	assert.Contains(t, supplied, FieldPricesByFuel)
}

func TestNormalizePriceMergesIntoExistingMap(t *testing.T) {
	details, _, err := NormalizeDetails(schema.CategoryFuelStation, map[string]interface{}{
		"pricesByFuel": map[string]interface{}{"Gasoil": 828.0},
		"price":        845.0,
		"fuelType":     "Super",
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"Gasoil": 828, "Super": 845}, details.FuelStation.PricesByFuel)
}

func TestNormalizeMobileMoneyLegacyMerchantID(t *testing.T) {
	details, supplied, err := NormalizeDetails(schema.CategoryMobileMoney, map[string]interface{}{
		"providers":  []interface{}{"MTN", "Orange"},
		"merchantId": "237-55-101",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"MTN", "Orange"}, details.MobileMoney.Providers)
	assert.Equal(t, map[string]string{"MTN": "237-55-101"}, details.MobileMoney.MerchantIDByProvider)
	assert.Contains(t, supplied, FieldMerchantIDByProvider)
}

func TestNormalizeMobileMoneyBareMerchantIDWithoutProviders(t *testing.T) {
	details, supplied, err := NormalizeDetails(schema.CategoryMobileMoney, map[string]interface{}{
		"merchantId": "237-55-101",
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{UnattributedProvider: "237-55-101"}, details.MobileMoney.MerchantIDByProvider)
	assert.Contains(t, supplied, FieldMerchantIDByProvider)
}

func TestNormalizeMobileMoneyCashAlias(t *testing.T) {
	details, supplied, err := NormalizeDetails(schema.CategoryMobileMoney, map[string]interface{}{
		"providers":        []interface{}{"MTN"},
		"hasCashAvailable": false,
	})

	assert.NoError(t, err)
	assert.NotNil(t, details.MobileMoney.HasMin50000XafAvailable)
	assert.False(t, *details.MobileMoney.HasMin50000XafAvailable)
	assert.Contains(t, supplied, FieldHasMin50000Xaf)
}

func TestNormalizeEmptyValuesNotSupplied(t *testing.T) {
	_, supplied, err := NormalizeDetails(schema.CategoryPharmacy, map[string]interface{}{
		"name":  "",
		"hours": "",
	})

	assert.NoError(t, err)
	assert.Empty(t, supplied)
}
