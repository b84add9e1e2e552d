package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTextReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#define X_CONTRACT_INDEX 1\n"))
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	got, err := c.Text(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "#define X_CONTRACT_INDEX 1\n", got)
}

func TestTextNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	_, err := c.Text(context.Background(), srv.URL+"/missing.h")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestTextTransportError(t *testing.T) {
	c := New(time.Second)
	_, err := c.Text(context.Background(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)
}
