package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudscape/core"
)

const shaderText = "#version 410 core\nout vec4 c;\nvoid main() { c = vec4(0.0); }\n"

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.frag")
	require.NoError(t, os.WriteFile(path, []byte(shaderText), 0o644))

	text, err := NewFetcher(path, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shaderText, text)
}

func TestFetchMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.frag")

	_, err := NewFetcher(path, time.Second).Fetch(context.Background())

	var fetchErr *core.ResourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, path, fetchErr.Resource)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shader.frag" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(shaderText))
	}))
	defer srv.Close()

	text, err := NewFetcher(srv.URL+"/shader.frag", time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shaderText, text)

	_, err = NewFetcher(srv.URL+"/other.frag", time.Second).Fetch(context.Background())
	var fetchErr *core.ResourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewFetcher(srv.URL, 50*time.Millisecond).Fetch(context.Background())

	var fetchErr *core.ResourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
