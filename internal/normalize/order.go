package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/api"
	"github.com/brixmarket/brix/pkg/types"
)

// Candidate orderings for order payloads. Endpoints differ on whether the
// product is embedded or flattened into the order row.
var (
	orderIDFields        = CandidateFieldSet{"id", "orderId"}
	orderTitleFields     = CandidateFieldSet{"productTitle", "product.title", "title"}
	orderUnitPriceFields = CandidateFieldSet{"unitPrice", "price", "product.price", "item.price"}
	orderQuantityFields  = CandidateFieldSet{"quantity", "qty", "count", "item.quantity"}
	orderTotalFields     = CandidateFieldSet{"totalPrice", "totalAmount", "total"}
	orderDateFields      = CandidateFieldSet{"createdAt", "orderDate", "orderedAt"}
	orderExpectedFields  = CandidateFieldSet{"estimatedDeliveryDate", "expectedDeliveryDate", "deliveryDate"}
	orderAddressFields   = CandidateFieldSet{"shippingAddress", "address", "deliveryAddress", "receiver"}
	addressPartFields    = []string{"city", "district", "detail", "address1", "address2"}
)

// defaultOrderStatus is assumed when the payload carries no status at all.
const defaultOrderStatus = "PENDING"

// NormalizeOrders projects the envelope's records onto canonical orders.
// Normalization is total: unresolvable fields become absent markers and the
// record is still returned, so a display row never disappears over one
// missing field.
func NormalizeOrders(env Envelope) []api.Order {
	records := env.Records()
	out := make([]api.Order, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeOrder(r))
	}
	return out
}

func normalizeOrder(r gjson.Result) api.Order {
	o := api.Order{
		ID:           orderIDFields.FirstString(r),
		Title:        orderTitleFields.FirstString(r),
		UnitPrice:    orderUnitPriceFields.FirstNumber(r),
		Quantity:     orderQuantityFields.FirstNumber(r),
		TotalPrice:   orderTotalFields.FirstNumber(r),
		OrderDate:    orderDateFields.FirstDate(r),
		ExpectedDate: orderExpectedFields.FirstDate(r),
		Address:      normalizeAddress(orderAddressFields.First(r)),
		Status:       defaultOrderStatus,
	}
	if s := r.Get("status"); s.Exists() && s.Type != gjson.Null {
		o.Status = s.String()
	}
	// Some backends omit the total but carry both factors.
	if o.TotalPrice.IsNil() && !o.UnitPrice.IsNil() && !o.Quantity.IsNil() {
		o.TotalPrice = types.NullableNumberFrom(o.UnitPrice.Value * o.Quantity.Value)
	}
	return o
}

// normalizeAddress accepts either a plain string or an address object whose
// populated sub-fields are joined with spaces.
func normalizeAddress(v gjson.Result) types.NullableString {
	switch v.Type {
	case gjson.String:
		if s := strings.TrimSpace(v.String()); s != "" {
			return types.NullableStringFrom(s)
		}
		return types.NullString()
	case gjson.JSON:
		if !v.IsObject() {
			return types.NullString()
		}
		parts := make([]string, 0, len(addressPartFields))
		for _, key := range addressPartFields {
			if p := v.Get(key); p.Type == gjson.String && strings.TrimSpace(p.String()) != "" {
				parts = append(parts, strings.TrimSpace(p.String()))
			}
		}
		if len(parts) == 0 {
			return types.NullString()
		}
		return types.NullableStringFrom(strings.Join(parts, " "))
	}
	return types.NullString()
}
