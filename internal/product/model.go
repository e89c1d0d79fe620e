package product

import "time"

type Category string

const (
	CategoryImmunity    Category = "immunity"
	CategoryDigestion   Category = "digestion"
	CategoryEnergy      Category = "energy"
	CategoryBeauty      Category = "beauty"
	CategoryRelaxation  Category = "relaxation"
	CategoryRespiratory Category = "respiratory"
	CategoryPainRelief  Category = "pain_relief"
	CategoryDiabetes    Category = "diabetes"
)

// CategoryAll is the catalog filter value that matches every category.
const CategoryAll Category = "all"

// Categories lists every category in catalog display order.
var Categories = []Category{
	CategoryImmunity,
	CategoryDigestion,
	CategoryEnergy,
	CategoryBeauty,
	CategoryRelaxation,
	CategoryRespiratory,
	CategoryPainRelief,
	CategoryDiabetes,
}

// DisplayName is the catalog header for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAll:
		return "Semua Produk"
	case CategoryImmunity:
		return "Untuk Imunitas"
	case CategoryDigestion:
		return "Untuk Pencernaan"
	case CategoryEnergy:
		return "Untuk Stamina"
	case CategoryBeauty:
		return "Untuk Kecantikan"
	case CategoryRelaxation:
		return "Untuk Relaksasi"
	case CategoryRespiratory:
		return "Untuk Pernapasan"
	case CategoryPainRelief:
		return "Pereda Nyeri"
	case CategoryDiabetes:
		return "Untuk Diabetes"
	}
	return "Katalog Produk"
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Seller struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Photo    string `json:"photo"`
}

// Product prices are whole rupiah.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Image       string    `json:"image"`
	Category    Category  `json:"category"`
	Seller      Seller    `json:"farmer"`
	Description string    `json:"description"`
	Benefits    []string  `json:"benefits"`
	Usage       string    `json:"usage"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SortOrder string

const (
	SortPopular   SortOrder = "popular"
	SortRating    SortOrder = "rating"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNewest    SortOrder = "newest"
)

// Filter mirrors the catalog screen controls. Zero values match everything.
type Filter struct {
	Category Category
	MinPrice *int64
	MaxPrice *int64
	Location string
	SellerID string
	Sort     SortOrder
}

// Input carries the farmer product form. Price and Stock are pointers so a
// missing field can be told apart from zero.
type Input struct {
	Name        string
	Price       *int64
	Stock       *int
	Description string
	ImageURL    string
	Category    Category
}
