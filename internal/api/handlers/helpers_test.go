package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Success bool                    `json:"success"`
	Data    T                       `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())

	return out
}
