package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func protected(username, password string) http.Handler {
	return BasicAuth(username, password)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestBasicAuth(t *testing.T) {
	cases := []struct {
		name   string
		header func(r *http.Request)
		want   int
	}{
		{"valid", func(r *http.Request) { r.SetBasicAuth("admin", "secret") }, http.StatusNoContent},
		{"no header", func(r *http.Request) {}, http.StatusUnauthorized},
		{"wrong password", func(r *http.Request) { r.SetBasicAuth("admin", "nope") }, http.StatusUnauthorized},
		{"wrong user", func(r *http.Request) { r.SetBasicAuth("root", "secret") }, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized},
		{"broken base64", func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!") }, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/admin/month-targets", nil)
			tc.header(req)
			rr := httptest.NewRecorder()

			protected("admin", "secret").ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="MES Console Admin"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestBasicAuth_EmptyCredentialsLockRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/admin/month-targets", nil)
	req.SetBasicAuth("", "")
	rr := httptest.NewRecorder()

	protected("", "").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
