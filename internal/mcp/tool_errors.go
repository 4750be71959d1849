package mcp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
)

const (
	codeUnauthenticated  = "unauthenticated"
	codePermissionDenied = "permission_denied"
	codeNotFound         = "not_found"
	codeInvalidArgument  = "invalid_argument"
	codeInternal         = "internal"
)

type toolErrorEnvelope struct {
	ErrorCode  string `json:"error_code"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

type toolError struct {
	Envelope toolErrorEnvelope
}

func (e toolError) Error() string {
	envelope := map[string]any{"error": e.Envelope}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return `{"error":{"error_code":"internal","detail":"failed to encode error envelope"}}`
	}
	return string(encoded)
}

// classifyToolError maps service errors onto the envelope. Internal
// errors keep their detail out of the response.
func classifyToolError(err error) toolErrorEnvelope {
	var authErr *identity.AuthError
	switch {
	case errors.As(err, &authErr):
		return toolErrorEnvelope{ErrorCode: codeUnauthenticated, Detail: authErr.Message, HTTPStatus: authErr.Status}
	case errors.Is(err, services.ErrNotListOwner):
		return toolErrorEnvelope{ErrorCode: codePermissionDenied, Detail: err.Error(), HTTPStatus: http.StatusForbidden}
	case errors.Is(err, store.ErrListNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return toolErrorEnvelope{ErrorCode: codeNotFound, Detail: err.Error(), HTTPStatus: http.StatusNotFound}
	case errors.Is(err, services.ErrInvalidInput):
		return toolErrorEnvelope{ErrorCode: codeInvalidArgument, Detail: strings.TrimSpace(err.Error()), HTTPStatus: http.StatusBadRequest}
	default:
		return toolErrorEnvelope{ErrorCode: codeInternal, Detail: "internal error", HTTPStatus: http.StatusInternalServerError}
	}
}

func isClientError(env toolErrorEnvelope) bool {
	return env.HTTPStatus > 0 && env.HTTPStatus < http.StatusInternalServerError
}
