// Package catalog defines the product record shown by the viewer and its
// field schema.
package catalog

import (
	"github.com/aarondl/null/v8"

	"github.com/nrfta/gridview-go"
)

// Product is one row of the product table. Brand is nullable because some
// products in the remote catalog carry no brand at all.
type Product struct {
	ID       int         `boil:"id" json:"id"`
	Title    string      `boil:"title" json:"title"`
	Brand    null.String `boil:"brand" json:"brand"`
	Category string      `boil:"category" json:"category"`
	Price    float64     `boil:"price" json:"price"`
	Stock    int         `boil:"stock" json:"stock"`
	Rating   float64     `boil:"rating" json:"rating"`
}

// Field names of Product, in column order.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldBrand    = "brand"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldRating   = "rating"
)

// Schema is the closed field set of Product.
var Schema = gridview.NewSchema[Product]().
	Numeric(FieldID, func(p Product) float64 { return float64(p.ID) }).
	Text(FieldTitle, func(p Product) string { return p.Title }).
	Categorical(FieldBrand, func(p Product) string { return p.Brand.String }).
	Categorical(FieldCategory, func(p Product) string { return p.Category }).
	Numeric(FieldPrice, func(p Product) float64 { return p.Price }).
	Numeric(FieldStock, func(p Product) float64 { return float64(p.Stock) }).
	Numeric(FieldRating, func(p Product) float64 { return p.Rating })

// Columns lists the SQL columns of the products table in Schema order.
var Columns = []string{FieldID, FieldTitle, FieldBrand, FieldCategory, FieldPrice, FieldStock, FieldRating}

// Table is the products table name.
const Table = "products"
