package shopserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop/internal/shared/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAuthenticator treats the token as the username; "admin" is ADMIN,
// "nobody" has no role and anyone else is CLIENT.
var testAuthenticator = auth.AuthenticatorFunc(func(_ context.Context, token string) (auth.Principal, error) {
	switch token {
	case "invalid":
		return auth.Principal{}, auth.ErrInvalidToken
	case "admin":
		return auth.Principal{Username: "admin", Roles: []string{auth.RoleAdmin}}, nil
	case "nobody":
		return auth.Principal{Username: "nobody"}, nil
	}
	return auth.Principal{Username: token, Roles: []string{auth.RoleClient}}, nil
})

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type problem struct {
	Type      string            `json:"type"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail"`
	ProductID int64             `json:"productId"`
	Requested int32             `json:"requested"`
	Available int32             `json:"available"`
	Fields    map[string]string `json:"fields"`
}
