package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebtr/watchlist/internal/data"
)

func TestNewDefaults(t *testing.T) {
	c := New("", nil)
	assert.Equal(t, "http://localhost:4000", c.baseURL)
	assert.Same(t, http.DefaultClient, c.httpClient)

	custom := &http.Client{}
	c = New("http://example.com", custom)
	assert.Equal(t, "http://example.com", c.baseURL)
	assert.Same(t, custom, c.httpClient)
}

func TestClientList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/movies", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]data.Movie{
			{ID: 2, Title: "Inception", Year: 2010, Status: "unwatched"},
			{ID: 1, Title: "Avatar", Year: 2009, Status: "watched"},
		})
	}))
	defer server.Close()

	movies, err := New(server.URL, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "Avatar", movies[1].Title)
}

func TestClientCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input data.MovieInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Inception", input.Title)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"message": "movie added successfully", "id": 7})
	}))
	defer server.Close()

	id, err := New(server.URL, nil).Create(context.Background(),
		data.MovieInput{Title: "Inception", Year: 2010, Status: "unwatched"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestClientUpdateReturnsAuthoritativeRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/movies/7", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"message": "movie updated successfully",
			"movie":   data.Movie{ID: 7, Title: "Inception", Year: 2010, Status: "watched"},
		})
	}))
	defer server.Close()

	movie, err := New(server.URL, nil).Update(context.Background(), 7,
		data.MovieInput{Title: "Inception", Year: 2010, Status: "watched"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), movie.ID)
	assert.Equal(t, "watched", movie.Status)
}

func TestClientDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/movies/3", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"message": "movie deleted successfully"})
	}))
	defer server.Close()

	require.NoError(t, New(server.URL, nil).Delete(context.Background(), 3))
}

func TestClientErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantErr    error
		wantDetail string
	}{
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       map[string]any{"error": "the requested resource could not be found"},
			wantErr:    ErrNotFound,
			wantDetail: "the requested resource could not be found",
		},
		{
			name:       "validation with field map",
			status:     http.StatusBadRequest,
			body:       map[string]any{"error": map[string]string{"year": "must be 1900 or later"}},
			wantErr:    ErrInvalidInput,
			wantDetail: "year must be 1900 or later",
		},
		{
			name:       "validation with plain message",
			status:     http.StatusBadRequest,
			body:       map[string]any{"error": "invalid movie id"},
			wantErr:    ErrInvalidInput,
			wantDetail: "invalid movie id",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       map[string]any{"error": "rate limit exceeded"},
			wantErr:    ErrRateLimited,
			wantDetail: "rate limit exceeded",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    map[string]any{"error": "the server encountered a problem and could not process your request"},
			wantErr: ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			_, err := New(server.URL, nil).Get(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantDetail != "" {
				assert.Contains(t, err.Error(), tt.wantDetail)
			}
		})
	}
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed up front so the request fails at the transport.

	_, err := New(server.URL, nil).List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrServer)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClientHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := New(server.URL, nil).List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(t.TempDir() + "/nope.toml")
		assert.Error(t, err)
	})

	t.Run("valid file", func(t *testing.T) {
		path := t.TempDir() + "/config.toml"
		contents := "[server]\nurl = \"http://watchlist.local:9000\"\ntimeout_seconds = 3\n"
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://watchlist.local:9000", config.Server.URL)
		assert.Equal(t, 3, config.Server.TimeoutSeconds)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := t.TempDir() + "/config.toml"
		require.NoError(t, os.WriteFile(path, []byte("[server]\nurl = \"http://watchlist.local:9000\"\n"), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://watchlist.local:9000", config.Server.URL)
		assert.Equal(t, DefaultConfig().Server.TimeoutSeconds, config.Server.TimeoutSeconds)
	})

	t.Run("client from config", func(t *testing.T) {
		c := DefaultConfig().NewClient()
		require.NotNil(t, c)
		assert.Equal(t, "http://localhost:4000", c.baseURL)
		assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
	})
}
