package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
)

var (
	reviewIDFields       = CandidateFieldSet{"id", "reviewId"}
	reviewNicknameFields = CandidateFieldSet{"nickname", "userNickname", "author"}
	reviewRatingFields   = CandidateFieldSet{"rating", "score"}
	reviewContentFields  = CandidateFieldSet{"content", "comment"}
	reviewCreatedFields  = CandidateFieldSet{"createdAt", "created", "date"}
)

// defaultReviewer labels reviews whose author field is missing entirely.
const defaultReviewer = "anonymous"

// NormalizeReviews projects the envelope's records onto canonical reviews.
func NormalizeReviews(env Envelope) []api.Review {
	records := env.Records()
	out := make([]api.Review, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeReview(r))
	}
	return out
}

func normalizeReview(r gjson.Result) api.Review {
	rev := api.Review{
		ID:        reviewIDFields.FirstString(r),
		Nickname:  defaultReviewer,
		Rating:    reviewRatingFields.FirstNumber(r),
		Content:   reviewContentFields.FirstString(r),
		CreatedAt: reviewCreatedFields.FirstDate(r),
	}
	if nick := reviewNicknameFields.FirstString(r); !nick.IsNil() {
		rev.Nickname = nick.Value
	}
	return rev
}
