package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
)

// imageCandidates are the flat keys an image reference hides under, in
// priority order, camelCase before snake_case.
var imageCandidates = CandidateFieldSet{
	"productImageUrl",
	"imageUrl",
	"productImage",
	"image",
	"imageURL",
	"thumbnail",
	"thumbnailUrl",
	"thumbUrl",
	"mainImageUrl",
	"mainImage",
	"product_image_url",
	"image_url",
}

// imageArrayCandidates hold collections whose first element (a string, or an
// object with a url field) may carry the reference.
var imageArrayCandidates = []string{"images", "photos"}

// ImageResolver extracts and absolutizes an image reference from an
// arbitrary record. Relation traversal is bounded: if the record itself
// yields nothing, exactly one hop into a nested product relation is tried.
type ImageResolver struct {
	origin string // scheme://host of the API, may be empty
}

// NewImageResolver creates a resolver that absolutizes root-relative paths
// against the given origin. An empty origin passes relative values through.
func NewImageResolver(origin string) ImageResolver {
	return ImageResolver{origin: strings.TrimRight(origin, "/")}
}

// Resolve evaluates the image candidate set against the record and
// classifies the found raw value. Scheme-prefixed values pass through
// unchanged; root-relative values are prefixed with the API origin; other
// non-empty strings are joined to the origin when one is known. No match at
// any stage yields an empty reference.
func (ir ImageResolver) Resolve(r gjson.Result) api.ImageReference {
	raw := findRawImage(r, true)
	if raw == "" {
		return api.ImageReference{}
	}
	return api.ImageReference{Raw: raw, Resolved: ir.absolutize(raw)}
}

func (ir ImageResolver) absolutize(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "/") {
		return ir.origin + raw
	}
	if ir.origin != "" {
		return ir.origin + "/" + raw
	}
	return raw
}

// findRawImage walks the candidate keys, then the image collections, then —
// once — a nested product relation. hop guards against unbounded recursion
// on cyclic or deeply nested payloads.
func findRawImage(r gjson.Result, hop bool) string {
	if !r.IsObject() {
		return ""
	}
	if v := imageCandidates.First(r); v.Type == gjson.String {
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	for _, key := range imageArrayCandidates {
		first := r.Get(key + ".0")
		if !first.Exists() {
			continue
		}
		if first.Type == gjson.String && strings.TrimSpace(first.String()) != "" {
			return strings.TrimSpace(first.String())
		}
		if u := first.Get("url"); u.Type == gjson.String && strings.TrimSpace(u.String()) != "" {
			return strings.TrimSpace(u.String())
		}
	}
	if hop {
		if p := r.Get("product"); p.IsObject() {
			return findRawImage(p, false)
		}
	}
	return ""
}
