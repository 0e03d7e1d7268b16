package product

// Product is immutable catalog reference data. Prices are stored in cents.
type Product struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	PriceCents           int64    `json:"priceCents"`
	Image                string   `json:"image"`
	Categories           []string `json:"categories"`
	InStock              bool     `json:"inStock"`
	Featured             bool     `json:"featured"`
	Colors               []string `json:"colors"`
	VehicleCompatibility []string `json:"vehicleCompatibility"`
}
