// Package api defines the canonical record types the Brix client hands to
// callers. Server payloads vary in shape across endpoints and backend
// versions; normalization projects them onto these fixed schemas, so a caller
// never sees a raw payload. Fields that could not be resolved carry an absent
// marker instead of a guessed zero value.
package api

import "github.com/brixmarket/brix/pkg/types"

// Order is a normalized purchase record.
type Order struct {
	ID           types.NullableString `json:"id"`
	Title        types.NullableString `json:"title"`
	UnitPrice    types.NullableNumber `json:"unitPrice"`
	Quantity     types.NullableNumber `json:"quantity"`
	TotalPrice   types.NullableNumber `json:"totalPrice"`
	OrderDate    types.NullableString `json:"orderDate"`    // YYYY-MM-DD
	ExpectedDate types.NullableString `json:"expectedDate"` // YYYY-MM-DD
	Address      types.NullableString `json:"address"`
	Status       string               `json:"status"` // defaults to PENDING
}

// Review is a normalized product review.
type Review struct {
	ID        types.NullableString `json:"id"`
	Nickname  string               `json:"nickname"` // defaults to "anonymous"
	Rating    types.NullableNumber `json:"rating"`
	Content   types.NullableString `json:"content"`
	CreatedAt types.NullableString `json:"createdAt"` // YYYY-MM-DD
}

// ProductDetail is a normalized product detail record.
type ProductDetail struct {
	ID           types.NullableString `json:"id"`
	Title        types.NullableString `json:"title"`
	SellerName   types.NullableString `json:"sellerName"`
	FruitName    types.NullableString `json:"fruitName"`
	Grade        types.NullableString `json:"grade"`
	Price        types.NullableNumber `json:"price"`
	Quantity     float64              `json:"quantity"` // defaults to 1
	ExpectedDate types.NullableString `json:"expectedDate"`
	Description  types.NullableString `json:"description"`
	GradeTokens  map[string]int       `json:"gradeTokens,omitempty"`
	Image        ImageReference       `json:"image"`
}

// PriceSample is one point of a price series. Unlike the other records a
// sample with an unresolvable price or date is dropped from its series
// entirely: chart data must not contain holes.
type PriceSample struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// ListingSummary is a normalized product listing entry.
type ListingSummary struct {
	ID          types.NullableString `json:"id"`
	Title       types.NullableString `json:"title"`
	Grade       types.NullableString `json:"grade"`
	Price       types.NullableNumber `json:"price"`
	Rating      types.NullableNumber `json:"rating"`
	ReviewCount types.NullableNumber `json:"reviewCount"`
	Image       ImageReference       `json:"image"`
}

// ImageReference carries both the raw image value found in a payload and its
// absolutized form. Resolved is empty when no usable reference was found.
type ImageReference struct {
	Raw      string `json:"raw,omitempty"`
	Resolved string `json:"resolved,omitempty"`
}

// HasResolved reports whether the reference points at a usable URL.
func (r ImageReference) HasResolved() bool {
	return r.Resolved != ""
}

// Profile is the authenticated user's account record.
type Profile struct {
	Username types.NullableString `json:"username"`
	Nickname types.NullableString `json:"nickname"`
	Email    types.NullableString `json:"email"`
	Role     types.NullableString `json:"role"`
}

// GradeResult is the outcome of an AI grade measurement upload.
type GradeResult struct {
	FruitName  types.NullableString `json:"fruitName"`
	Grade      types.NullableString `json:"grade"`
	Sweetness  types.NullableNumber `json:"sweetness"`
	Confidence types.NullableNumber `json:"confidence"`
}
