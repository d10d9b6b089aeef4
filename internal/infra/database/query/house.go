package query

import "github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"

// HouseColumns is the select list shared by every listing query, in scan order
const HouseColumns = `hr.id, hr.available, hr.published, hr.price, hr.acreage, hr.address,
	hr.house_number, hr.street, hr.ward_id, hr.latitude, hr.longitude, hr.title, hr.phone_number,
	hr.create_time, hr.update_time, hr.house_type, hr.contract_period,
	hr.bedrooms, hr.living_rooms, hr.kitchens,
	COALESCE(w.name, ''), COALESCE(d.name, ''), COALESCE(p.name, '')`

const houseFrom = `
	FROM house_rent hr
	LEFT JOIN wards w ON hr.ward_id = w.id
	LEFT JOIN districts d ON w.district_id = d.id
	LEFT JOIN provinces p ON d.province_id = p.id`

func availableHouses(p Placeholder) *Select {
	return NewSelect(p, "SELECT "+HouseColumns+houseFrom).
		Raw("hr.available = TRUE")
}

// SearchHouses renders the listing search for a normalized filter
func SearchHouses(p Placeholder, f house.SearchFilter) (string, []any) {
	q := availableHouses(p)

	if f.ProvinceID != nil {
		q.Eq("p.id", *f.ProvinceID)
	}
	if f.DistrictID != nil {
		q.Eq("d.id", *f.DistrictID)
	}
	if f.WardID != nil {
		q.Eq("hr.ward_id", *f.WardID)
	}
	if f.MinPrice != nil {
		q.Gte("hr.price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.Lte("hr.price", *f.MaxPrice)
	}
	if f.MinAcreage != nil {
		q.Gte("hr.acreage", *f.MinAcreage)
	}
	if f.MaxAcreage != nil {
		q.Lte("hr.acreage", *f.MaxAcreage)
	}
	if f.HouseType != nil {
		q.Eq("hr.house_type", *f.HouseType)
	}
	if f.ContractPeriod != nil {
		q.Eq("hr.contract_period", *f.ContractPeriod)
	}
	if f.Bedrooms != nil {
		q.Eq("hr.bedrooms", *f.Bedrooms)
	}
	if f.LivingRooms != nil {
		q.Eq("hr.living_rooms", *f.LivingRooms)
	}
	if f.Kitchens != nil {
		q.Eq("hr.kitchens", *f.Kitchens)
	}

	return q.OrderBy("hr.id").Page(f.Limit, f.Offset).ToSQL()
}

// HousesByIDs renders the lookup of available listings among ids
func HousesByIDs(p Placeholder, ids []int64) (string, []any) {
	q := availableHouses(p)
	return In(q, "hr.id", ids).OrderBy("hr.id").ToSQL()
}

// HouseEnvironments renders the amenities attached to the listings in houseIDs.
// Rows are (house_rent_id, id, category, value).
func HouseEnvironments(p Placeholder, houseIDs []int64) (string, []any) {
	q := NewSelect(p, `SELECT hre.house_rent_id, e.id, e.category, e.value
	FROM house_rent_environment hre
	JOIN environment e ON hre.environment_id = e.id`)
	return In(q, "hre.house_rent_id", houseIDs).OrderBy("hre.house_rent_id, e.id").ToSQL()
}

// HouseTypes renders the distinct listing types
func HouseTypes(p Placeholder) (string, []any) {
	return NewSelect(p, "SELECT DISTINCT house_type FROM house_rent").
		Raw("house_type IS NOT NULL").
		Raw("house_type <> ''").
		OrderBy("house_type").
		ToSQL()
}

// Environments renders the amenity catalog, optionally filtered by a value substring
func Environments(p Placeholder, search string) (string, []any) {
	q := NewSelect(p, "SELECT id, category, value FROM environment")
	if search != "" {
		q.Contains("value", search)
	}
	return q.OrderBy("id").ToSQL()
}

// EnvironmentsByIDs renders the amenities among ids
func EnvironmentsByIDs(p Placeholder, ids []int64) (string, []any) {
	q := NewSelect(p, "SELECT id, category, value FROM environment")
	return In(q, "id", ids).OrderBy("id").ToSQL()
}
