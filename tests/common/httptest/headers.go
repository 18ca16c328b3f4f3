//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertHeaderListExcludes checks a comma separated header such as
// Access-Control-Allow-Headers for an entry, case-insensitively.
func AssertHeaderListExcludes(t *testing.T, w *httptest.ResponseRecorder, key, entry string) {
	t.Helper()
	for _, v := range strings.Split(w.Header().Get(key), ",") {
		assert.NotEqual(t, strings.ToLower(entry), strings.ToLower(strings.TrimSpace(v)), "%s lists %s", key, entry)
	}
}

// PreflightHeaders are the headers a browser sends on a CORS preflight.
func PreflightHeaders(origin, method string) map[string]string {
	return map[string]string{
		"Origin":                        origin,
		"Access-Control-Request-Method": method,
	}
}
