package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestStaticSolve(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/utils/captcha" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer server.Close()

	client := resty.New().SetBaseURL(server.URL)

	token, err := NewStatic(client, "").Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultStaticToken, token)
	require.Equal(t, 1, hits)

	token, err = NewStatic(client, "custom").Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "custom", token)
	require.Equal(t, 2, hits)
}

func TestStaticWithoutSession(t *testing.T) {
	token, err := NewStatic(nil, "").Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultStaticToken, token)
}
