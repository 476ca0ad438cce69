package client

import (
	"net/http"

	"github.com/brixmarket/brix/internal/common/apperrors"
)

// Base client error
var (
	ErrClient apperrors.Error = apperrors.New("client error").SetStatusCode(http.StatusInternalServerError)
)

// Transport and session errors. Only these two classes are surfaced to the
// caller; payload-shape irregularities are absorbed by the normalizers.
var (
	ErrTransport      apperrors.Error = ErrClient.New("network request failed").SetStatusCode(http.StatusBadGateway)
	ErrSessionExpired apperrors.Error = ErrClient.New("session expired").SetStatusCode(http.StatusUnauthorized)
	ErrRefreshFailed  apperrors.Error = ErrSessionExpired.New("token refresh failed").SetStatusCode(http.StatusUnauthorized)
)

// Auth flow errors
var (
	ErrNotLoggedIn apperrors.Error = ErrClient.New("not logged in").SetStatusCode(http.StatusUnauthorized)
	ErrLoginFailed apperrors.Error = ErrClient.New("login failed").SetStatusCode(http.StatusUnauthorized)
)

// Request building errors
var (
	ErrInvalidRequest apperrors.Error = ErrClient.New("invalid request").SetStatusCode(http.StatusBadRequest)
)
