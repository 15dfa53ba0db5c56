package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"alegarazh/internal/app/model"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, login, password string) (*model.AuthResponse, error) {
	body := map[string]string{"login": login, "password": password}

	var out model.AuthResponse
	if err := c.request(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, data model.RegisterRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.request(ctx, http.MethodPost, "/auth/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the server that the session ends. Credential cleanup is the
// caller's job; it must happen even when this call fails.
func (c *Client) Logout(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me fetches the profile of the token holder.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.request(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile change and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, data model.ProfileUpdate) (*model.User, error) {
	var out model.User
	if err := c.request(ctx, http.MethodPut, "/users/profile", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers lists users that can be added as friends.
func (c *Client) SearchUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.request(ctx, http.MethodGet, "/users/search", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyChats lists the conversations of the current user.
func (c *Client) MyChats(ctx context.Context) ([]model.Chat, error) {
	var out []model.Chat
	if err := c.request(ctx, http.MethodGet, "/chats/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatMessages fetches one page of a chat's history.
func (c *Client) ChatMessages(ctx context.Context, chatID string, page, limit int) (*model.MessagesPage, error) {
	endpoint := fmt.Sprintf("/chats/%s/messages?page=%d&limit=%d", url.PathEscape(chatID), page, limit)

	var out model.MessagesPage
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts a message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*model.Message, error) {
	endpoint := fmt.Sprintf("/chats/%s/messages", url.PathEscape(chatID))
	body := map[string]string{"text": text}

	var out model.Message
	if err := c.request(ctx, http.MethodPost, endpoint, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateChat creates a direct or group conversation.
func (c *Client) CreateChat(ctx context.Context, data model.ChatCreate) (*model.Chat, error) {
	var out model.Chat
	if err := c.request(ctx, http.MethodPost, "/chats", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyFriends lists the current user's friends.
func (c *Client) MyFriends(ctx context.Context) ([]model.Friend, error) {
	var out []model.Friend
	if err := c.request(ctx, http.MethodGet, "/friends/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFriend adds the user with the given id to the friends list.
func (c *Client) AddFriend(ctx context.Context, friendID string) error {
	endpoint := "/friends/" + url.PathEscape(friendID)

	var out struct {
		Success bool `json:"success"`
	}
	return c.request(ctx, http.MethodPost, endpoint, nil, &out)
}

// RemoveFriend removes the user with the given id from the friends list.
func (c *Client) RemoveFriend(ctx context.Context, friendID string) error {
	endpoint := "/friends/" + url.PathEscape(friendID)

	var out struct {
		Success bool `json:"success"`
	}
	return c.request(ctx, http.MethodDelete, endpoint, nil, &out)
}

// SearchFriends filters the friends list by nickname.
func (c *Client) SearchFriends(ctx context.Context, query string) ([]model.Friend, error) {
	endpoint := "/friends/search?q=" + url.QueryEscape(query)

	var out []model.Friend
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
