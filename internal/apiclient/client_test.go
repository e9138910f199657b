package apiclient_test

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

	"github.com/belajarku/belajarku-bot/internal/apiclient"
)

func newClient(t *testing.T, url string) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(url, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestClient_Get_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/murid/mata-pelajaran", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"id":1,"nama_mapel":"Matematika"}]}`)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	var resp struct {
		Data []struct {
			ID        int64  `json:"id"`
			NamaMapel string `json:"nama_mapel"`
		} `json:"data"`
	}
	err := client.Get(context.Background(), "/api/murid/mata-pelajaran", &resp)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Matematika", resp.Data[0].NamaMapel)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	err := client.Post(context.Background(), "/api/auth/register", map[string]string{"email": "a@b.c"}, nil)
	assert.NoError(t, err)
}

func TestClient_ErrorBody_SurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Email atau password salah"}`)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	err := client.Post(context.Background(), "/api/auth/login", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Email atau password salah", apiErr.Error())
}

func TestClient_ErrorWithoutBody_FallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	err := client.Get(context.Background(), "/api/murid/quiz/1", nil)
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestClient_NoContent_LeavesOutUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	out := map[string]string{"keep": "me"}
	err := client.Delete(context.Background(), "/api/guru/mata-pelajaran/1", &out)
	require.NoError(t, err)
	assert.Equal(t, "me", out["keep"])
}

func TestClient_EmptyBody_LeavesOutUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	out := map[string]string{"keep": "me"}
	err := client.Get(context.Background(), "/api/check-auth", &out)
	require.NoError(t, err)
	assert.Equal(t, "me", out["keep"])
}

func TestClient_TransportFailure_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newClient(t, srv.URL)

	err := client.Get(context.Background(), "/api/check-auth", nil)
	require.Error(t, err)

	var netErr *apiclient.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "/api/check-auth", netErr.URL)

	var apiErr *apiclient.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_CookiePersistsAcrossRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			io.WriteString(w, `{"user":{"id":1}}`)
		case "/api/check-auth":
			cookie, err := r.Cookie("session")
			require.NoError(t, err)
			assert.Equal(t, "abc123", cookie.Value)
			io.WriteString(w, `{"authenticated":true}`)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	require.NoError(t, client.Post(context.Background(), "/api/auth/login", map[string]string{}, nil))
	require.NoError(t, client.Get(context.Background(), "/api/check-auth", nil))
}
