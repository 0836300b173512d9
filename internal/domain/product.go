// Package domain holds the core data model for the product-listing
// cleaning pipeline.
package domain

// Canonical column names for the product table.
const (
	ColProductName   = "product_name"
	ColBrand         = "brand"
	ColCategory      = "category"
	ColPrice         = "price"
	ColSalePrice     = "sale_price"
	ColRating        = "rating"
	ColReviewCount   = "review_count"
	ColDescription   = "description"
	ColWebsite       = "website"
	ColDateCollected = "date_collected"
	ColAttributes    = "attributes"
)

// ExpectedColumns lists every base column the pipeline guarantees to exist,
// in canonical order.
var ExpectedColumns = []string{
	ColProductName,
	ColBrand,
	ColCategory,
	ColPrice,
	ColSalePrice,
	ColRating,
	ColReviewCount,
	ColDescription,
	ColWebsite,
	ColDateCollected,
	ColAttributes,
}

// Standardized product categories. CategoryOther is the fallback for
// anything the mapper cannot place.
const (
	CategoryKitchen      = "Kitchen"
	CategoryCleaning     = "Cleaning"
	CategoryBathPersonal = "Bath & Personal Care"
	CategoryLaundry      = "Laundry"
	CategoryHomeGarden   = "Home & Garden"
	CategoryReusable     = "Reusable Items"
	CategoryBamboo       = "Bamboo Products"
	CategoryOther        = "Other"
)

// Categories is the closed enumeration of product categories.
var Categories = []string{
	CategoryKitchen,
	CategoryCleaning,
	CategoryBathPersonal,
	CategoryLaundry,
	CategoryHomeGarden,
	CategoryReusable,
	CategoryBamboo,
	CategoryOther,
}

// Standardized source websites. WebsiteOther is the fallback.
const (
	WebsiteAmazon      = "Amazon"
	WebsitePackageFree = "Package Free Shop"
	WebsiteEarthHero   = "EarthHero"
	WebsiteBrandSite   = "Brand Website"
	WebsiteEtsy        = "Etsy"
	WebsiteWalmart     = "Walmart"
	WebsiteOther       = "Other Retailer"
)

// Websites is the closed enumeration of source websites.
var Websites = []string{
	WebsiteAmazon,
	WebsitePackageFree,
	WebsiteEarthHero,
	WebsiteBrandSite,
	WebsiteEtsy,
	WebsiteWalmart,
	WebsiteOther,
}

// Price tiers derived from the table's price quartiles.
const (
	TierBudget   = "Budget"
	TierMidRange = "Mid-Range"
	TierPremium  = "Premium"
	TierLuxury   = "Luxury"
)

// Brand sustainability classifications.
const (
	BrandEcoFocused  = "Eco-Focused"
	BrandEmerging    = "Emerging"
	BrandEstablished = "Established"
	BrandUnknown     = "Unknown"
)

// Product is one product listing. It is constructed by the schema
// normalizer from a raw row and mutated in place by each pipeline stage.
type Product struct {
	// RowIndex is the zero-based position of the record in the source
	// file, used for deterministic ordering and duplicate tie-breaks.
	RowIndex int

	// Base columns.
	Name          string
	Brand         string
	Category      string
	Price         float64
	SalePrice     float64
	Rating        float64
	ReviewCount   int
	Description   string
	Website       string
	DateCollected string
	Attributes    string

	// Derived columns, populated by the feature engineer.
	OnSale             bool
	DiscountPct        float64
	PriceRatio         float64
	PriceTier          string
	ReviewScore        float64
	HasCredibleReviews bool
	AttributesCleaned  []string
	NameLength         int
	DescLength         int
	HasDescription     bool
	BrandCategory      string

	// missing tracks base columns that were empty in the source row and
	// still await imputation.
	missing map[string]bool

	// imputed tracks base columns whose values were filled by the
	// imputer rather than observed in the source row.
	imputed map[string]bool

	// InvalidReason is set when a cell cannot be repaired (for example a
	// non-numeric price); such records are excluded by the validator.
	InvalidReason string
}

// SetMissing marks a base column as absent in the source row.
func (p *Product) SetMissing(col string) {
	if p.missing == nil {
		p.missing = make(map[string]bool)
	}
	p.missing[col] = true
}

// MarkImputed records that a column's value was filled by the imputer and
// clears its missing mark.
func (p *Product) MarkImputed(col string) {
	delete(p.missing, col)
	if p.imputed == nil {
		p.imputed = make(map[string]bool)
	}
	p.imputed[col] = true
}

// WasImputed reports whether a column's value was filled by the imputer.
func (p *Product) WasImputed(col string) bool {
	return p.imputed[col]
}

// IsMissing reports whether a base column still awaits imputation.
func (p *Product) IsMissing(col string) bool {
	return p.missing[col]
}

// HasTag reports whether the given sustainability tag was matched for this
// product.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.AttributesCleaned {
		if t == tag {
			return true
		}
	}
	return false
}

// Exclusion records a row removed from the table, with the reason.
type Exclusion struct {
	RowIndex int    `json:"row_index"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// Table is the full in-memory dataset handed from stage to stage.
type Table struct {
	Products []*Product
	Excluded []Exclusion
}

// Len returns the number of surviving records.
func (t *Table) Len() int {
	return len(t.Products)
}

// Exclude removes the products at the given indices (into t.Products) and
// records them with the reason. Indices must be sorted ascending.
func (t *Table) Exclude(indices []int, reason string) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := make([]*Product, 0, len(t.Products)-len(indices))
	for i, p := range t.Products {
		if drop[i] {
			t.Excluded = append(t.Excluded, Exclusion{
				RowIndex: p.RowIndex,
				Name:     p.Name,
				Reason:   reason,
			})
			continue
		}
		kept = append(kept, p)
	}
	t.Products = kept
}
