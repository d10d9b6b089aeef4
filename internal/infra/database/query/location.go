package query

// Provinces renders the province list
func Provinces(p Placeholder) (string, []any) {
	return NewSelect(p, "SELECT id, name FROM provinces").OrderBy("id").ToSQL()
}

// Districts renders the districts of a province, or all of them when provinceID is nil
func Districts(p Placeholder, provinceID *int64) (string, []any) {
	q := NewSelect(p, "SELECT id, name FROM districts")
	if provinceID != nil {
		q.Eq("province_id", *provinceID)
	}
	return q.OrderBy("id").ToSQL()
}

// Wards renders the wards of a district, or all of them when districtID is nil
func Wards(p Placeholder, districtID *int64) (string, []any) {
	q := NewSelect(p, "SELECT id, name FROM wards")
	if districtID != nil {
		q.Eq("district_id", *districtID)
	}
	return q.OrderBy("id").ToSQL()
}
