package location

// Item is a province, district or ward
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
