package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alegarazh/internal/app/db"
	"alegarazh/internal/app/model"
	"alegarazh/internal/configs"
	"alegarazh/internal/pkg/resp"
)

type testEnv struct {
	t      *testing.T
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	deps := &AppDeps{
		Config: &configs.ServerConfig{
			Environment: "development",
			Port:        4000,
			JWTSecret:   "test_secret",
		},
		Store: db.NewStore(sqlDB),
	}

	return &testEnv{t: t, router: Router(deps)}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body resp.ErrorBody
	decodeBody(t, rec, &body)
	return body.Message
}

// register creates an account through the public endpoint and returns the
// issued token plus user.
func (e *testEnv) register(nickname string) model.AuthResponse {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/auth/register", "", model.RegisterRequest{
		Nickname:        nickname,
		Login:           fmt.Sprintf("%s@example.com", nickname),
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var auth model.AuthResponse
	decodeBody(e.t, rec, &auth)
	require.NotEmpty(e.t, auth.Token)
	return auth
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	auth := env.register("garazh")
	assert.Equal(t, "garazh", auth.User.Nickname)
	assert.Equal(t, "garazh@example.com", auth.User.Login)
	assert.True(t, auth.User.IsOnline)
	assert.NotEmpty(t, auth.User.Avatar)

	// Same email again.
	rec := env.do(http.MethodPost, "/auth/register", "", model.RegisterRequest{
		Nickname:        "garazh2",
		Login:           "garazh@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Пользователь с таким email уже существует", errorMessage(t, rec))

	// Wrong password.
	rec = env.do(http.MethodPost, "/auth/login", "", map[string]string{
		"login":    "garazh@example.com",
		"password": "WrongPass1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Неверный email или пароль", errorMessage(t, rec))

	// Correct credentials.
	rec = env.do(http.MethodPost, "/auth/login", "", map[string]string{
		"login":    "garazh@example.com",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login model.AuthResponse
	decodeBody(t, rec, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		body    model.RegisterRequest
		message string
	}{
		{
			name: "bad nickname",
			body: model.RegisterRequest{
				Nickname: "ga!", Login: "a@b.com",
				Password: "Secret123", ConfirmPassword: "Secret123",
			},
			message: "Ник может содержать только буквы и цифры",
		},
		{
			name: "bad email",
			body: model.RegisterRequest{
				Nickname: "garazh", Login: "not-an-email",
				Password: "Secret123", ConfirmPassword: "Secret123",
			},
			message: "Введите корректный email",
		},
		{
			name: "weak password",
			body: model.RegisterRequest{
				Nickname: "garazh", Login: "a@b.com",
				Password: "alllower1", ConfirmPassword: "alllower1",
			},
			message: "Слишком простой пароль",
		},
		{
			name: "mismatched confirmation",
			body: model.RegisterRequest{
				Nickname: "garazh", Login: "a@b.com",
				Password: "Secret123", ConfirmPassword: "Secret124",
			},
			message: "Пароли не совпадают",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/auth/register", "", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, errorMessage(t, rec))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Требуется авторизация", errorMessage(t, rec))

	rec = env.do(http.MethodGet, "/friends/my", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeAndProfileUpdate(t *testing.T) {
	env := newTestEnv(t)

	auth := env.register("garazh")
	other := env.register("sosed")

	rec := env.do(http.MethodGet, "/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me model.User
	decodeBody(t, rec, &me)
	assert.Equal(t, auth.User.ID, me.ID)

	// Partial update: status only.
	status := "чиню карбюратор"
	rec = env.do(http.MethodPut, "/users/profile", auth.Token, model.ProfileUpdate{Status: &status})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.User
	decodeBody(t, rec, &updated)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, "garazh", updated.Nickname)

	// Taken nickname.
	taken := other.User.Nickname
	rec = env.do(http.MethodPut, "/users/profile", auth.Token, model.ProfileUpdate{Nickname: &taken})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Этот никнейм уже занят", errorMessage(t, rec))

	// Keeping your own nickname is not a conflict.
	own := "garazh"
	rec = env.do(http.MethodPut, "/users/profile", auth.Token, model.ProfileUpdate{Nickname: &own})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFriendsFlow(t *testing.T) {
	env := newTestEnv(t)

	alice := env.register("alica")
	bob := env.register("borya")

	// Self-friendship.
	rec := env.do(http.MethodPost, "/friends/"+alice.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Нельзя добавить в друзья самого себя", errorMessage(t, rec))

	// Unknown user.
	rec = env.do(http.MethodPost, "/friends/no-such-user", alice.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/friends/"+bob.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Adding twice.
	rec = env.do(http.MethodPost, "/friends/"+bob.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Этот пользователь уже у вас в друзьях", errorMessage(t, rec))

	rec = env.do(http.MethodGet, "/friends/my", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var friends []model.Friend
	decodeBody(t, rec, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, "borya", friends[0].Nickname)
	assert.Equal(t, "online", friends[0].Status)

	// Friendship is one-directional.
	rec = env.do(http.MethodGet, "/friends/my", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends = nil
	decodeBody(t, rec, &friends)
	assert.Empty(t, friends)

	rec = env.do(http.MethodGet, "/friends/search?q=BOR", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends = nil
	decodeBody(t, rec, &friends)
	require.Len(t, friends, 1)

	rec = env.do(http.MethodDelete, "/friends/"+bob.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/friends/"+bob.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Этого пользователя нет в вашем списке друзей", errorMessage(t, rec))
}

func TestChatsAndMessages(t *testing.T) {
	env := newTestEnv(t)

	alice := env.register("alica")
	bob := env.register("borya")
	eve := env.register("evgesha")

	// Empty participant list.
	rec := env.do(http.MethodPost, "/chats", alice.Token, model.ChatCreate{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Выберите хотя бы одного участника", errorMessage(t, rec))

	rec = env.do(http.MethodPost, "/chats", alice.Token, model.ChatCreate{
		ParticipantIDs: []string{bob.User.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var chat model.Chat
	decodeBody(t, rec, &chat)
	assert.Equal(t, model.ChatTypeDirect, chat.Type)
	assert.Len(t, chat.Participants, 2)
	// A nameless direct chat shows the other participant.
	assert.Equal(t, "borya", chat.Name)

	// Sending and reading.
	rec = env.do(http.MethodPost, "/chats/"+chat.ID+"/messages", alice.Token, map[string]string{
		"text": "первое",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sent model.Message
	decodeBody(t, rec, &sent)
	assert.Equal(t, "первое", sent.Text)
	require.NotNil(t, sent.Sender)
	assert.Equal(t, "alica", sent.Sender.Nickname)

	rec = env.do(http.MethodPost, "/chats/"+chat.ID+"/messages", bob.Token, map[string]string{
		"text": "второе",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/chats/"+chat.ID+"/messages", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page model.MessagesPage
	decodeBody(t, rec, &page)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, "второе", page.Messages[0].Text)

	// Pagination.
	rec = env.do(http.MethodGet, "/chats/"+chat.ID+"/messages?page=1&limit=1", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = model.MessagesPage{}
	decodeBody(t, rec, &page)
	require.Len(t, page.Messages, 1)
	assert.True(t, page.HasMore)

	// Empty text.
	rec = env.do(http.MethodPost, "/chats/"+chat.ID+"/messages", alice.Token, map[string]string{
		"text": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Сообщение не может быть пустым", errorMessage(t, rec))

	// Outsiders see the chat as missing.
	rec = env.do(http.MethodGet, "/chats/"+chat.ID+"/messages", eve.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Чат не найден", errorMessage(t, rec))

	// Listing reflects last activity.
	rec = env.do(http.MethodGet, "/chats/my", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var chats []model.Chat
	decodeBody(t, rec, &chats)
	require.Len(t, chats, 1)
	assert.Equal(t, "второе", chats[0].LastMessage)
	assert.NotEmpty(t, chats[0].LastMessageTime)
}

func TestCreateGroupChat(t *testing.T) {
	env := newTestEnv(t)

	alice := env.register("alica")
	bob := env.register("borya")
	eve := env.register("evgesha")

	rec := env.do(http.MethodPost, "/chats", alice.Token, model.ChatCreate{
		Name:           "Гаражный кооператив",
		ParticipantIDs: []string{bob.User.ID, eve.User.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var chat model.Chat
	decodeBody(t, rec, &chat)
	assert.Equal(t, model.ChatTypeGroup, chat.Type)
	assert.Equal(t, "Гаражный кооператив", chat.Name)
	assert.Len(t, chat.Participants, 3)

	rec = env.do(http.MethodPost, "/chats", alice.Token, model.ChatCreate{
		ParticipantIDs: []string{bob.User.ID},
		Type:           "broadcast",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Неверный тип чата", errorMessage(t, rec))
}
