package projection

import (
	"github.com/citypulse/citypoints-api/schema"
)

// mergeDetails merges the details of a later event into the accumulated
// state. Scalars and arrays from the new event overwrite when present;
// map-valued fields merge shallowly, keeping keys the new event does not
// mention. The fraud check follows the latest event that carries one.
func mergeDetails(dst, src schema.PointDetails) schema.PointDetails {
	out := cloneDetails(dst)

	if src.Pharmacy != nil {
		out.Pharmacy = mergePharmacy(out.Pharmacy, src.Pharmacy)
	}
	if src.FuelStation != nil {
		out.FuelStation = mergeFuelStation(out.FuelStation, src.FuelStation)
	}
	if src.MobileMoney != nil {
		out.MobileMoney = mergeMobileMoney(out.MobileMoney, src.MobileMoney)
	}
	if src.FraudCheck != nil {
		out.FraudCheck = src.FraudCheck
	}

	return out
}

func mergePharmacy(dst, src *schema.PharmacyDetails) *schema.PharmacyDetails {
	if dst == nil {
		merged := *src
		return &merged
	}
	out := *dst
	if src.Name != nil && *src.Name != "" {
		out.Name = src.Name
	}
	if src.IsOpenNow != nil {
		out.IsOpenNow = src.IsOpenNow
	}
	if src.OpeningHours != nil && *src.OpeningHours != "" {
		out.OpeningHours = src.OpeningHours
	}
	if src.PhoneNumber != nil && *src.PhoneNumber != "" {
		out.PhoneNumber = src.PhoneNumber
	}
	return &out
}

func mergeFuelStation(dst, src *schema.FuelStationDetails) *schema.FuelStationDetails {
	if dst == nil {
		merged := *src
		return &merged
	}
	out := *dst
	if src.Name != nil && *src.Name != "" {
		out.Name = src.Name
	}
	if src.HasFuelAvailable != nil {
		out.HasFuelAvailable = src.HasFuelAvailable
	}
	if len(src.FuelTypes) > 0 {
		out.FuelTypes = src.FuelTypes
	}
	if len(src.PricesByFuel) > 0 {
		merged := map[string]float64{}
		for fuel, price := range out.PricesByFuel {
			merged[fuel] = price
		}
		for fuel, price := range src.PricesByFuel {
			merged[fuel] = price
		}
		out.PricesByFuel = merged
	}
	if src.OpeningHours != nil && *src.OpeningHours != "" {
		out.OpeningHours = src.OpeningHours
	}
	return &out
}

func mergeMobileMoney(dst, src *schema.MobileMoneyDetails) *schema.MobileMoneyDetails {
	if dst == nil {
		merged := *src
		return &merged
	}
	out := *dst
	if len(src.Providers) > 0 {
		out.Providers = src.Providers
	}
	if len(src.MerchantIDByProvider) > 0 {
		merged := map[string]string{}
		for provider, id := range out.MerchantIDByProvider {
			merged[provider] = id
		}
		for provider, id := range src.MerchantIDByProvider {
			merged[provider] = id
		}
		out.MerchantIDByProvider = merged
	}
	if src.HasMin50000XafAvailable != nil {
		out.HasMin50000XafAvailable = src.HasMin50000XafAvailable
	}
	if src.OpeningHours != nil && *src.OpeningHours != "" {
		out.OpeningHours = src.OpeningHours
	}
	return &out
}

func cloneDetails(d schema.PointDetails) schema.PointDetails {
	out := d
	if d.Pharmacy != nil {
		p := *d.Pharmacy
		out.Pharmacy = &p
	}
	if d.FuelStation != nil {
		f := *d.FuelStation
		out.FuelStation = &f
	}
	if d.MobileMoney != nil {
		m := *d.MobileMoney
		out.MobileMoney = &m
	}
	return out
}
