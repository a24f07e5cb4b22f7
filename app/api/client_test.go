package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/neo-admin/models"
)

type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

type item struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "://nope"} {
		_, err := NewClient(ClientConfig{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestClient_Do_DecodesData(t *testing.T) {
	var seen *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "ok", Data: []item{{ID: "1", Name: "Phones"}}})
	})

	var out []item
	msg, err := c.Do(context.Background(), http.MethodGet, "/category", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, []item{{ID: "1", Name: "Phones"}}, out)
	assert.Equal(t, "/category", seen.URL.Path)
	assert.Equal(t, "Bearer secret", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Request-ID"))
	assert.Empty(t, seen.Header.Get("Content-Type"))
}

func TestClient_Do_SendsJSONBody(t *testing.T) {
	var got map[string]string
	var contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "done"})
	})

	msg, err := c.Do(context.Background(), http.MethodPost, "/x", map[string]string{"name": "Books"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "done", msg)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{"name": "Books"}, got)
}

func TestClient_Do_ClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   error
	}{
		{"not found", http.StatusNotFound, models.ErrNotFound},
		{"bad request", http.StatusBadRequest, models.ErrValidation},
		{"conflict", http.StatusConflict, models.ErrValidation},
		{"unprocessable", http.StatusUnprocessableEntity, models.ErrValidation},
		{"unauthorized", http.StatusUnauthorized, models.ErrServer},
		{"internal", http.StatusInternalServerError, models.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, Response{
					Message: "Name is taken",
					Error:   &ErrorInfo{Code: "E", Message: "Name is taken", Details: map[string]string{"name": "taken"}},
				})
			})

			_, err := c.Do(context.Background(), http.MethodGet, "/category", nil, nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var remote *models.RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, "Name is taken", remote.Message)
			assert.Equal(t, "E", remote.Code)
			assert.Equal(t, map[string]string{"name": "taken"}, remote.Fields)
		})
	}
}

func TestClient_Do_FallsBackToErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   map[string]string{"code": "NOT_FOUND", "message": "category not found"},
		})
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/category/1", nil, nil)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "category not found", models.UserMessage(err, "fallback"))
}

func TestClient_Do_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/category", nil, nil)

	assert.ErrorIs(t, err, models.ErrServer)
	assert.Equal(t, "fallback", models.UserMessage(err, "fallback"))
}

func TestClient_Do_MalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/category", nil, nil)

	assert.ErrorIs(t, err, models.ErrServer)
}

func TestClient_Do_MissingData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": nil})
	})

	var out []item
	_, err := c.Do(context.Background(), http.MethodGet, "/category", nil, &out)

	assert.ErrorIs(t, err, models.ErrServer)
}

func TestClient_Do_WrongDataShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Response{Success: true, Data: "a string"})
	})

	var out []item
	_, err := c.Do(context.Background(), http.MethodGet, "/category", nil, &out)

	assert.ErrorIs(t, err, models.ErrServer)
}

func TestClient_Do_TransportFailure(t *testing.T) {
	calls := 0
	boom := errors.New("connection refused")
	c, err := NewClient(ClientConfig{
		BaseURL: "http://backend.test",
		HTTPClient: &MockHTTPClient{DoFunc: func(*http.Request) (*http.Response, error) {
			calls++
			return nil, boom
		}},
	})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), http.MethodDelete, "/category/delete-category/1", nil, nil)

	assert.ErrorIs(t, err, models.ErrNetwork)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "calls are never retried")
}

func TestClient_Do_OmitsAuthorizationWithoutToken(t *testing.T) {
	var header string
	c, err := NewClient(ClientConfig{
		BaseURL: "http://backend.test",
		HTTPClient: &MockHTTPClient{DoFunc: func(r *http.Request) (*http.Response, error) {
			header = r.Header.Get("Authorization")
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(jsonReader(t, Response{Success: true})),
			}, nil
		}},
	})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), http.MethodGet, "/category", nil, nil)

	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestClient_Do_UnencodableBody(t *testing.T) {
	c, err := NewClient(ClientConfig{BaseURL: "http://backend.test"})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), http.MethodPost, "/x", map[string]interface{}{"icon": models.UploadedMedia("a.png", "image/png", nil)}, nil)

	assert.ErrorIs(t, err, models.ErrUnresolvedMedia)
	var remote *models.RemoteError
	assert.False(t, errors.As(err, &remote))
}

func TestPathEscape(t *testing.T) {
	assert.Equal(t, "/category/a%2Fb", PathEscape("/category", "a/b"))
}
