package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, "v2.3.4", extractVersion(`const VERSION = "v2.3.4"`))
	assert.Equal(t, "v0.1.0", extractVersion("package version\n\nconst VERSION=\"v0.1.0\"\n"))
	assert.Empty(t, extractVersion(`const VERSION = "latest"`))
}

func TestCheckVersionCurrent(t *testing.T) {
	srv := serve(t, http.StatusOK, `const VERSION = "`+VERSION+`"`)

	current, newer, err := CheckVersion(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.True(t, current)
	assert.Empty(t, newer)
}

func TestCheckVersionOutdated(t *testing.T) {
	srv := serve(t, http.StatusOK, `const VERSION = "v99.0.0"`)

	current, newer, err := CheckVersion(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.False(t, current)
	assert.Equal(t, "v99.0.0", newer)
}

func TestCheckVersionErrors(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "missing")
	current, _, err := CheckVersion(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
	assert.True(t, current, "failures never claim an update")

	srv = serve(t, http.StatusOK, "no version here")
	_, _, err = CheckVersion(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}
