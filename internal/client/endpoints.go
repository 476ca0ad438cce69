package client

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints derives the absolute URL for every logical API operation from a
// single base URL. The backend exposes a conventional REST surface; detail
// endpoints are parameterized by resource id.
type Endpoints struct {
	baseURL string
}

// NewEndpoints creates an endpoint table for the given base URL.
// The base URL is normalized: trailing slashes are removed and https:// is
// assumed when no scheme is given.
func NewEndpoints(baseURL string) Endpoints {
	return Endpoints{baseURL: MorphServer(baseURL)}
}

// MorphServer ensures the server URL is properly formatted.
// Adds https:// prefix if missing and removes trailing slashes.
func MorphServer(server string) string {
	if server == "" {
		return server
	}
	server = strings.TrimRight(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}
	return server
}

// BaseURL returns the normalized base URL.
func (e Endpoints) BaseURL() string {
	return e.baseURL
}

// Origin returns the scheme://host portion of the base URL, used to
// absolutize root-relative image paths. Returns an empty string when the
// base URL does not parse.
func (e Endpoints) Origin() string {
	u, err := url.Parse(e.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (e Endpoints) join(path string) string {
	return e.baseURL + path
}

// Auth endpoints
func (e Endpoints) Login() string   { return e.join("/auth/login") }
func (e Endpoints) Reissue() string { return e.join("/auth/reissue") }

// Account endpoints
func (e Endpoints) Me() string             { return e.join("/users/me") }
func (e Endpoints) ChangePassword() string { return e.join("/users/me/password") }

// Order endpoints
func (e Endpoints) MyOrders() string { return e.join("/orders/my") }
func (e Endpoints) Orders() string   { return e.join("/orders") }
func (e Endpoints) OrderDetail(orderID string) string {
	return e.join("/orders/" + url.PathEscape(orderID))
}

// Product endpoints
func (e Endpoints) ProductSearch() string   { return e.join("/products/search") }
func (e Endpoints) PopularProducts() string { return e.join("/products/popular") }
func (e Endpoints) ProductDetail(productID string) string {
	return e.join("/products/" + url.PathEscape(productID))
}
func (e Endpoints) ProductReviews(productID string) string {
	return e.join(fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID)))
}

// Market data endpoints
func (e Endpoints) PriceSeries() string { return e.join("/fruits/graph") }

// Measurement endpoints
func (e Endpoints) Grade() string { return e.join("/inspections/grade") }

// Health endpoint, unauthenticated
func (e Endpoints) Health() string { return e.join("/health") }
