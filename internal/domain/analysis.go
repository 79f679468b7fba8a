package domain

import "encoding/json"

// Categories is the closed set of product categories the analyst may emit
var Categories = []string{
	"Hoodies", "Shirts", "Jackets", "Shoes", "Sweaters", "Dresses",
	"Pants", "Skirts", "Shorts", "Bags", "Accessories",
}

// ColourFamilies is the closed set of basic colour families
var ColourFamilies = []string{
	"Red", "Blue", "Green", "Yellow", "Orange", "Purple",
	"Pink", "Brown", "Black", "White", "Gray",
}

// MinAnalysisTags is the minimum number of tags an image analysis must carry
const MinAnalysisTags = 7

// Colour describes one colour present on the analysed product
type Colour struct {
	Family     string      `json:"family"`
	Name       string      `json:"name"`
	Hex        string      `json:"hex"`
	Percentage json.Number `json:"percentage"`
}

// ImageAnalysis is the validated result of a product image analysis.
// Invariants: Category is one of Categories, every Colour.Family is one
// of ColourFamilies, colour percentages sum to 100 within ±1, and there
// are at least MinAnalysisTags tags.
type ImageAnalysis struct {
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Tags        []string    `json:"tags"`
	Style       string      `json:"style"`
	Category    string      `json:"category"`
	Colours     []Colour    `json:"colours"`
	Material    string      `json:"material"`
	Description string      `json:"description"`
}

// ValidCategory reports whether c is in the closed category set
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidColourFamily reports whether f is in the closed colour family set
func ValidColourFamily(f string) bool {
	for _, v := range ColourFamilies {
		if v == f {
			return true
		}
	}
	return false
}
