// Package classify maps free-form category, website, and brand strings onto
// the closed enumerations of the product table using ordered keyword
// decision tables.
package classify

import "github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"

// Rule maps a keyword set onto one target value. Tables are ordered slices
// evaluated in declaration order; the first rule with any keyword present
// in the text wins. Matching is case-insensitive and substring-based.
type Rule struct {
	Target   string
	Keywords []string
}

// CategoryRules returns the decision table for product categories. Keywords
// cover both raw-category variants ("Kitchenware", "Laundry Care") and
// product-name vocabulary so that records with no category at all are
// inferred from their name and description.
func CategoryRules() []Rule {
	return []Rule{
		{
			Target: domain.CategoryKitchen,
			Keywords: []string{
				"kitchen", "kitchenware", "cookware", "cooking", "utensil",
				"dish", "cutlery", "food storage", "meal prep", "lunch box",
				"container", "storage", "food",
			},
		},
		{
			Target: domain.CategoryCleaning,
			Keywords: []string{
				"cleaning supplies", "household cleaner", "cleaner",
				"detergent", "soap", "surface", "spray", "wipe",
				"disinfectant", "degreaser", "floor cleaner",
				"bathroom cleaner",
			},
		},
		{
			Target: domain.CategoryBathPersonal,
			Keywords: []string{
				"personal care", "bathroom", "hygiene", "beauty", "bath",
				"shower", "shampoo", "conditioner", "tooth", "dental",
				"razor", "soap bar", "deodorant", "skin care",
			},
		},
		{
			Target: domain.CategoryLaundry,
			Keywords: []string{
				"laundry", "fabric", "dryer", "washer", "stain remover",
			},
		},
		{
			Target: domain.CategoryHomeGarden,
			Keywords: []string{
				"home decor", "home improvement", "garden", "outdoor",
				"plant", "decor", "furniture", "light", "candle",
				"organizer", "planter", "compost", "home",
			},
		},
		{
			Target: domain.CategoryReusable,
			Keywords: []string{
				"reusable", "sustainable living", "straw", "bottle", "cup",
				"wrap", "food cover", "produce bag", "bag",
			},
		},
		{
			Target: domain.CategoryBamboo,
			Keywords: []string{
				"bamboo", "bambu", "bambo",
			},
		},
	}
}

// WebsiteRules returns the decision table for source websites.
func WebsiteRules() []Rule {
	return []Rule{
		{Target: domain.WebsiteAmazon, Keywords: []string{"amazon.com", "amazon", "amz"}},
		{Target: domain.WebsitePackageFree, Keywords: []string{"packagefreeshop.com", "package free", "pkgfree"}},
		{Target: domain.WebsiteEarthHero, Keywords: []string{"earthhero.com", "earthhero", "earth hero"}},
		{Target: domain.WebsiteBrandSite, Keywords: []string{"brand website", "official site", "brand.com", "direct"}},
		{Target: domain.WebsiteEtsy, Keywords: []string{"etsy.com", "etsy"}},
		{Target: domain.WebsiteWalmart, Keywords: []string{"walmart.com", "walmart"}},
	}
}

// BrandCorrection canonicalizes known spelling variants of a brand.
type BrandCorrection struct {
	Canonical string
	Variants  []string
}

// BrandCorrections returns the table of known brand-name variants.
func BrandCorrections() []BrandCorrection {
	return []BrandCorrection{
		{Canonical: "Public Goods", Variants: []string{"publicgoods", "public goods co"}},
		{Canonical: "Blueland", Variants: []string{"blue land", "blue land inc"}},
		{Canonical: "Grove Collaborative", Variants: []string{"grove", "groveco"}},
		{Canonical: "Earth Breeze", Variants: []string{"earthbreeze", "earth breeze co"}},
		{Canonical: "Who Gives A Crap", Variants: []string{"whogivesacrap", "who gives a crap inc"}},
		{Canonical: "EcoRoots", Variants: []string{"ecoroots", "eco roots"}},
		{Canonical: "Package Free", Variants: []string{"packagefree", "package-free"}},
		{Canonical: "EarthHero", Variants: []string{"earth hero", "earthhero"}},
		{Canonical: "Seventh Generation", Variants: []string{"7th generation", "seventh gen"}},
		{Canonical: "Mrs. Meyer's", Variants: []string{"mrs meyers", "mrs. meyers"}},
	}
}
