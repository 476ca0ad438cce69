package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
)

var (
	productIDFields       = CandidateFieldSet{"id", "productId"}
	productTitleFields    = CandidateFieldSet{"title", "name"}
	productSellerFields   = CandidateFieldSet{"sellerNickname", "sellerName", "seller"}
	productFruitFields    = CandidateFieldSet{"fruitType.name", "fruitName", "fruit"}
	productGradeFields    = CandidateFieldSet{"grade", "quality", "rank"}
	productPriceFields    = CandidateFieldSet{"price", "avgTotalPrice", "averagePrice", "totalPrice", "minTotalPrice"}
	productQuantityFields = CandidateFieldSet{"quantity", "stock", "bundleCount"}
	productExpectedFields = CandidateFieldSet{"expectedDeliveryDate", "eta"}
	productDescFields     = CandidateFieldSet{"description", "content"}
	gradeTokenFields      = CandidateFieldSet{"gradeTokenMap", "gradeTokenCounts"}
)

// NormalizeProductDetail projects a detail envelope onto a canonical product
// record. The payload may arrive bare, under data, or as a one-element
// array; an empty or non-object payload yields a record of absent fields
// rather than an error.
func NormalizeProductDetail(env Envelope, resolver ImageResolver) api.ProductDetail {
	payload := firstRecord(env.Data())

	p := api.ProductDetail{
		ID:           productIDFields.FirstString(payload),
		Title:        productTitleFields.FirstString(payload),
		SellerName:   productSellerFields.FirstString(payload),
		FruitName:    productFruitFields.FirstString(payload),
		Grade:        productGradeFields.FirstString(payload),
		Price:        productPriceFields.FirstNumber(payload),
		Quantity:     1,
		ExpectedDate: productExpectedFields.FirstString(payload),
		Description:  productDescFields.FirstString(payload),
		GradeTokens:  normalizeGradeTokens(gradeTokenFields.First(payload)),
		Image:        resolver.Resolve(payload),
	}
	if q := productQuantityFields.FirstNumber(payload); !q.IsNil() {
		p.Quantity = q.Value
	}
	return p
}

// normalizeGradeTokens flattens the per-grade token count map. Non-numeric
// values are skipped; anything that is not an object yields nil.
func normalizeGradeTokens(v gjson.Result) map[string]int {
	if !v.IsObject() {
		return nil
	}
	out := make(map[string]int)
	v.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			out[key.String()] = int(value.Int())
		}
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

var (
	profileUsernameFields = CandidateFieldSet{"username", "userId", "loginId"}
	profileNicknameFields = CandidateFieldSet{"nickname", "name"}
	profileEmailFields    = CandidateFieldSet{"email"}
	profileRoleFields     = CandidateFieldSet{"role", "userRole"}
)

// NormalizeProfile projects the account endpoint's payload onto a canonical
// profile record.
func NormalizeProfile(env Envelope) api.Profile {
	payload := firstRecord(env.Data())
	return api.Profile{
		Username: profileUsernameFields.FirstString(payload),
		Nickname: profileNicknameFields.FirstString(payload),
		Email:    profileEmailFields.FirstString(payload),
		Role:     profileRoleFields.FirstString(payload),
	}
}

var (
	gradeFruitFields      = CandidateFieldSet{"fruitName", "fruit", "label"}
	gradeResultFields     = CandidateFieldSet{"grade", "quality", "result"}
	gradeSweetnessFields  = CandidateFieldSet{"sweetness", "brix", "sugarContent"}
	gradeConfidenceFields = CandidateFieldSet{"confidence", "probability", "score"}
)

// NormalizeGradeResult projects a grade-measurement upload response onto a
// canonical result record.
func NormalizeGradeResult(env Envelope) api.GradeResult {
	payload := firstRecord(env.Data())
	return api.GradeResult{
		FruitName:  gradeFruitFields.FirstString(payload),
		Grade:      gradeResultFields.FirstString(payload),
		Sweetness:  gradeSweetnessFields.FirstNumber(payload),
		Confidence: gradeConfidenceFields.FirstNumber(payload),
	}
}
