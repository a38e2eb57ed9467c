package books_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"litlog/pkg/books"

	"github.com/stretchr/testify/assert"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "public", r.URL.Query().Get("source"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"]}},
				{"volumeInfo": {"title": "Dune Messiah", "authors": ["Frank Herbert", "Someone Else"]}}
			]
		}`)
	}))
	defer srv.Close()

	client := books.NewClient(srv.URL, "test-key")
	volumes, err := client.Search(context.Background(), "dune")
	assert.NoError(t, err)
	assert.Len(t, volumes, 2)
	assert.Equal(t, "Dune", volumes[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, volumes[0].Authors)
	assert.Equal(t, []string{"Frank Herbert", "Someone Else"}, volumes[1].Authors)
}

func TestClient_SearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := books.NewClient(srv.URL, "test-key")
	volumes, err := client.Search(context.Background(), "no such book")
	assert.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestClient_SearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := books.NewClient(srv.URL, "bad-key")
	_, err := client.Search(context.Background(), "dune")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
