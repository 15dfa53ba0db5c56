package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alegarazh/internal/app/model"
)

// memStore implements storage.Store in memory.
type memStore struct {
	token string
	user  *model.User
}

func (m *memStore) Token() string { return m.token }

func (m *memStore) SaveToken(token string) error { m.token = token; return nil }

func (m *memStore) User() *model.User { return m.user }

func (m *memStore) SaveUser(u *model.User) error { m.user = u; return nil }

func (m *memStore) Clear() error { m.token = ""; m.user = nil; return nil }

func TestClient_AttachesHeaders(t *testing.T) {
	var gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","nickname":"n","login":"a@b.com","avatar":"","status":"","isOnline":true}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})
	require.NoError(t, client.SetToken("t1"))

	_, err := client.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer t1", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var sawAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{"token":"t1","user":{"id":"1"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})

	_, err := client.Login(context.Background(), "a@b.com", "Secret1x")
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClient_TokenFallsBackToStore(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	// Fresh client, token only in the persistent store.
	client := New(srv.URL, &memStore{token: "persisted"})

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted", gotAuth)
}

func TestClient_ErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "not found", reqErr.Message)
	assert.Equal(t, "not found", reqErr.Error())
}

func TestClient_ErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "Ошибка запроса: 500", reqErr.Message)
}

func TestClient_LoginDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"t1","user":{"id":"1","nickname":"Garage42","login":"a@b.com","avatar":"","status":"","isOnline":true}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})

	res, err := client.Login(context.Background(), "a@b.com", "Secret1x")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, "1", res.User.ID)
	assert.Equal(t, "Garage42", res.User.Nickname)
}

func TestClient_ChatMessagesURL(t *testing.T) {
	var gotURL string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"messages":[],"total":0,"page":2,"limit":10,"hasMore":false}`))
	}))
	defer srv.Close()

	client := New(srv.URL, &memStore{})

	page, err := client.ChatMessages(context.Background(), "chat-1", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "/chats/chat-1/messages?page=2&limit=10", gotURL)
	assert.Equal(t, 2, page.Page)
	assert.False(t, page.HasMore)
}

func TestClient_ClearCredentials(t *testing.T) {
	store := &memStore{token: "t1", user: &model.User{ID: "1"}}
	client := New("http://unused", store)

	require.NoError(t, client.ClearCredentials())
	assert.Empty(t, store.token)
	assert.Nil(t, store.user)
	assert.Empty(t, client.Token())
}
