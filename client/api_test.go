package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/skills", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"skill-1","title":"Go","description":"backend","icon":"code","order":0,"createdAt":null,"updatedAt":null}]`))
	})
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","title":"My Site","description":"d","project_brief":null,"client":null,"location":null,"tags":["A","B"],"featured":false,"order":0,"createdAt":null,"updatedAt":null,"images":[]}]`))
	})
	mux.HandleFunc("/api/experiences", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch experiences","status":"error"}`))
	})
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Profile not found","status":"error"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPI_Decodes(t *testing.T) {
	api := NewAPI(newTestServer(t).URL+"/", nil)
	ctx := context.Background()

	skills, err := api.Skills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Title)
	assert.Nil(t, skills[0].CreatedAt)

	projects, err := api.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"A", "B"}, projects[0].Tags)
	assert.Empty(t, projects[0].Images)
}

func TestAPI_Errors(t *testing.T) {
	api := NewAPI(newTestServer(t).URL, nil)
	ctx := context.Background()

	_, err := api.Experiences(ctx)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Failed to fetch experiences", statusErr.Message)

	_, err = api.Profile(ctx)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
