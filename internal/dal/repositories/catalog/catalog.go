package catalogrepo

import (
	"context"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/icatalogrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
)

var standardColors = []string{
	"Black", "Red", "Blue", "Gray", "White", "Green", "Orange", "Light Pink",
	"Hot Pink", "Yellow", "Purple", "Gold", "Rainbow", "Cream", "Olive Green",
	"Teal", "Brown",
}

// products is the static catalog. It is reference data: never mutated at
// runtime, so the repository can hand out copies without locking.
var products = []product.Product{
	{
		ID:   "headrest-handles-001",
		Name: "Paracord Headrest Grab Handles (Pair)",
		Description: "Handmade paracord grab handles, sold as a pair for both headrests. " +
			"Approximately 11-12 inches long, made to order in any color combination: the " +
			"primary color runs down the middle of the handle and the secondary color " +
			"accents the sides.",
		PriceCents:           3000,
		Image:                "/products/headrest-handles.jpg",
		Categories:           []string{"headrest-handles"},
		InStock:              true,
		Featured:             true,
		Colors:               standardColors,
		VehicleCompatibility: []string{"Universal"},
	},
	{
		ID:   "headrest-handles-002",
		Name: "Paracord Kid Assist Grab Handle: Lifted Vehicle Accessory (single)",
		Description: "Custom paracord assist handle for lifted trucks, Jeeps and SUVs. " +
			"Approximately 24 inches long, giving kids the leverage to climb into the back " +
			"seat on their own. Every order is for one single handle.",
		PriceCents:           2500,
		Image:                "/products/kid-grab-handle.jpg",
		Categories:           []string{"headrest-handles"},
		InStock:              true,
		Featured:             true,
		Colors:               standardColors,
		VehicleCompatibility: []string{"Universal"},
	},
	{
		ID:   "headrest-handles-003",
		Name: "Headrest Paracord Clips (2 pack)",
		Description: "Handmade paracord headrest clips with a high-strength carabiner for " +
			"securing grocery bags, backpacks and water bottles. Attach to the headrest and " +
			"rotate front to back.",
		PriceCents:           2000,
		Image:                "/products/headrest-clips.jpg",
		Categories:           []string{"headrest-handles", "accessories"},
		InStock:              true,
		Featured:             true,
		Colors:               standardColors,
		VehicleCompatibility: []string{"Universal"},
	},
	{
		ID:   "roof-rack-handle-001",
		Name: "Paracord Roof Rack Handle (pair)",
		Description: "Handmade paracord roof rack handles, sold as a pair with mounting " +
			"hardware included (eyebolt, two washers, lock washer and nut per handle). " +
			"Shown on a Prinsu rack, compatible with most SUV roof racks.",
		PriceCents:           4000,
		Image:                "/products/roof-rack-handles.jpg",
		Categories:           []string{"roof-rack-handles"},
		InStock:              true,
		Featured:             false,
		Colors:               standardColors,
		VehicleCompatibility: []string{"Prinsu Roof Rack"},
	},
	{
		ID:   "pet-zipline-001",
		Name: "Paracord Backseat Zip Line For Pets",
		Description: "Handcrafted paracord pet zip line that attaches to the overhead grab " +
			"handles on both sides of the vehicle, with a sliding center attachment that " +
			"clips to a harness or collar. Standard length 42 inches, adjustable to order. " +
			"Includes three black carabiner clips.",
		PriceCents:           3500,
		Image:                "/products/pet-zipline.jpg",
		Categories:           []string{"pets"},
		InStock:              true,
		Featured:             true,
		Colors:               standardColors,
		VehicleCompatibility: []string{"Universal"},
	},
}

// Repository serves the static product catalog.
type Repository struct {
	byID map[string]product.Product
}

func NewRepository() *Repository {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Repository{byID: byID}
}

func (r *Repository) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, len(products))
	copy(out, products)

	return out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (product.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return product.Product{}, icatalogrepo.ErrNotFound
	}

	return p, nil
}
