package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
)

var (
	listingIDFields     = CandidateFieldSet{"id", "productId", "product.id"}
	listingTitleFields  = CandidateFieldSet{"title", "productTitle", "name", "product.title"}
	listingGradeFields  = CandidateFieldSet{"grade", "product.grade"}
	listingPriceFields  = CandidateFieldSet{"price", "avgPrice", "averagePrice", "avg", "totalAmount", "total", "minTotalPrice", "product.price"}
	listingRatingFields = CandidateFieldSet{"avgRating", "rating", "averageRating"}
	listingReviewFields = CandidateFieldSet{"reviewCount", "reviews", "totalReviews"}
)

// NormalizeListings projects the envelope's records onto listing summaries,
// resolving each record's image directly. Records whose image cannot be
// resolved here are candidates for hydration.
func NormalizeListings(env Envelope, resolver ImageResolver) []api.ListingSummary {
	records := env.Records()
	out := make([]api.ListingSummary, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeListing(r, resolver))
	}
	return out
}

func normalizeListing(r gjson.Result, resolver ImageResolver) api.ListingSummary {
	return api.ListingSummary{
		ID:          listingIDFields.FirstString(r),
		Title:       listingTitleFields.FirstString(r),
		Grade:       listingGradeFields.FirstString(r),
		Price:       listingPriceFields.FirstNumber(r),
		Rating:      listingRatingFields.FirstNumber(r),
		ReviewCount: listingReviewFields.FirstNumber(r),
		Image:       resolver.Resolve(r),
	}
}
