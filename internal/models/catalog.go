package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scalar holds a JSON value the catalog sends either as a string or as a
// number. null decodes to the empty string.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(data)
	return nil
}

// String returns the raw text.
func (s Scalar) String() string {
	return string(s)
}

// Float parses the value, reporting false when it is not a number.
func (s Scalar) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SubCategory is a second-level catalog category.
type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
	Layout     int    `json:"layout"`
	Published  bool   `json:"published"`
	IsExtended bool   `json:"is_extended"`
}

// Category is a top-level catalog category with its subcategories.
type Category struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Order      int           `json:"order"`
	IsExtended bool          `json:"is_extended"`
	Categories []SubCategory `json:"categories"`
}

// CategoriesResponse is the payload of GET categories/.
type CategoriesResponse struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []Category `json:"results"`
}

// CategoryDetail is the payload of GET categories/{id}/.
type CategoryDetail struct {
	ID         int                       `json:"id"`
	Name       string                    `json:"name"`
	Categories []SubCategoryWithProducts `json:"categories"`
}

// SubCategoryWithProducts lists the products of one subcategory.
type SubCategoryWithProducts struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Product is a catalog product as returned by GET products/{id}/.
type Product struct {
	ID                Scalar            `json:"id"`
	Slug              string            `json:"slug"`
	DisplayName       string            `json:"display_name"`
	Thumbnail         string            `json:"thumbnail"`
	Packaging         string            `json:"packaging"`
	PriceInstructions PriceInstructions `json:"price_instructions"`
}

// PriceInstructions carries the pricing details of a product.
type PriceInstructions struct {
	UnitPrice         Scalar `json:"unit_price"`
	SizeFormat        Scalar `json:"size_format"`
	UnitSize          Scalar `json:"unit_size"`
	ReferenceFormat   Scalar `json:"reference_format"`
	PreviousUnitPrice Scalar `json:"previous_unit_price"`
	UnitName          Scalar `json:"unit_name"`
	PackSize          Scalar `json:"pack_size"`
	TotalUnits        Scalar `json:"total_units"`
	IsPack            bool   `json:"is_pack"`
}

// UnitPriceDecimal returns the unit price, or zero when it does not parse.
func (p PriceInstructions) UnitPriceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(p.UnitPrice.String()))
	if err != nil {
		return decimal.Zero
	}
	return d
}
