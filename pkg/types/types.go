// Package domain defines the product and preference types shared by the
// API, the CLI and the analysis engine.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// DisplayMode selects how much of a breakdown a renderer shows.
type DisplayMode string

// Display modes.
const (
	DisplaySimple   DisplayMode = "simple"
	DisplayDetailed DisplayMode = "detailed"
)

// Valid reports whether m is a known display mode.
func (m DisplayMode) Valid() bool {
	return m == DisplaySimple || m == DisplayDetailed
}

// Preferences are the seller's UI settings. They are passed explicitly to
// analysis and rendering; nothing reads them from ambient state.
type Preferences struct {
	TargetMarginRate float64     `json:"target_margin_rate" yaml:"target_margin_rate"`
	DisplayMode      DisplayMode `json:"display_mode"       yaml:"display_mode"`
}

// directSellerMarker appears in the seller name of marketplace-owned stock.
const directSellerMarker = "쿠팡"

// Product is the description of a listing page as supplied by a scraper or
// typed in by the seller. Pointer fields are nil when the page did not
// carry the value.
type Product struct {
	ProductID       *string  `json:"product_id,omitempty"`
	ItemID          *string  `json:"item_id,omitempty"`
	VendorItemID    *string  `json:"vendor_item_id,omitempty"`
	URL             *string  `json:"url,omitempty"`
	Title           *string  `json:"title,omitempty"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	SalePrice       *float64 `json:"sale_price,omitempty"`
	ShippingFee     *float64 `json:"shipping_fee,omitempty"`
	IsFreeShipping  *bool    `json:"is_free_shipping,omitempty"`
	IsRocket        *bool    `json:"is_rocket,omitempty"`
	SellerName      *string  `json:"seller_name,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ReviewCount     *int     `json:"review_count,omitempty"`
	CategoryPath    []string `json:"category_path,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`
}

// Price returns the sanitized sale price, 0 when unknown.
func (p *Product) Price() float64 {
	if p.SalePrice == nil {
		return 0
	}
	return Sanitize(*p.SalePrice)
}

// IsDirectPurchase reports whether the marketplace itself sells the item.
func (p *Product) IsDirectPurchase() bool {
	if p.SellerName == nil {
		return false
	}
	name := strings.TrimSpace(*p.SellerName)
	return name != "" && strings.Contains(name, directSellerMarker)
}

// Empty reports whether the page yielded neither a price nor a title.
func (p *Product) Empty() bool {
	noPrice := p.SalePrice == nil || *p.SalePrice == 0
	noTitle := p.Title == nil || *p.Title == ""
	return noPrice && noTitle
}

// Sanitize clips negative, NaN and infinite amounts to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseWon extracts an amount from user or page text such as "25,800원".
// Only ASCII digits are kept; text without digits parses as 0.
func ParseWon(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return Sanitize(v)
}
