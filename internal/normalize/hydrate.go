package normalize

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
)

// defaultHydrateLimit caps concurrent detail fetches. Hydration is only used
// on small top-N result sets, but the cap keeps a misbehaving endpoint from
// fanning out.
const defaultHydrateLimit = 4

// DetailFetcher fetches one product detail envelope by id. Implementations
// go through the authenticated request client.
type DetailFetcher func(ctx context.Context, id string) (Envelope, error)

// hydrateIDFields locates a record's identifier for the secondary fetch.
var hydrateIDFields = CandidateFieldSet{"id", "productId", "product.id"}

// Hydrator recovers missing listing images via per-record detail fetches.
type Hydrator struct {
	resolver ImageResolver
	fetch    DetailFetcher
	limit    int
}

// NewHydrator creates a hydrator using the given resolver and fetcher.
func NewHydrator(resolver ImageResolver, fetch DetailFetcher) Hydrator {
	return Hydrator{resolver: resolver, fetch: fetch, limit: defaultHydrateLimit}
}

// WithLimit returns a copy with a different concurrency cap. Values below 1
// are treated as 1.
func (h Hydrator) WithLimit(limit int) Hydrator {
	if limit < 1 {
		limit = 1
	}
	h.limit = limit
	return h
}

// Hydrate normalizes the envelope's records into listing summaries and, for
// each record lacking a directly resolvable image, issues one secondary
// detail fetch to recover it. Per-record attempts are independent: a
// transport error, a missing id, or an unresolved detail image degrades that
// single record's image to absent without affecting its siblings. Result
// order matches the input order.
func (h Hydrator) Hydrate(ctx context.Context, env Envelope) []api.ListingSummary {
	records := env.Records()
	out := make([]api.ListingSummary, len(records))

	sem := make(chan struct{}, h.limit)
	var wg sync.WaitGroup
	for i, r := range records {
		out[i] = normalizeListing(r, h.resolver)
		if out[i].Image.HasResolved() {
			continue
		}
		wg.Add(1)
		go func(i int, r gjson.Result) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ref, ok := h.hydrateOne(ctx, r); ok {
				out[i].Image = ref
			}
		}(i, r)
	}
	wg.Wait()
	return out
}

// hydrateOne fetches the record's detail payload and resolves an image from
// it, including the detail's own product relation.
func (h Hydrator) hydrateOne(ctx context.Context, r gjson.Result) (api.ImageReference, bool) {
	id := hydrateIDFields.FirstString(r)
	if id.IsNil() {
		return api.ImageReference{}, false
	}
	env, err := h.fetch(ctx, id.Value)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Value).Msg("image hydration fetch failed")
		return api.ImageReference{}, false
	}
	payload := firstRecord(env.Data())
	ref := h.resolver.Resolve(payload)
	if !ref.HasResolved() {
		return api.ImageReference{}, false
	}
	return ref, true
}
