/*
Package model contains the data structures shared between the АлёГараж client
and the development backend.

The JSON tags mirror the wire contract of the REST backend exactly; every type
here crosses the HTTP boundary in at least one endpoint.
*/
package model

// User represents the profile of a registered account.
type User struct {

	// ID is the server-assigned unique identifier.
	ID string `json:"id"`

	// Nickname is the display name, 3-20 letters and digits.
	Nickname string `json:"nickname"`

	// Login is the email-shaped account name, immutable after registration.
	Login string `json:"login"`

	// Avatar is the URL of the profile picture.
	Avatar string `json:"avatar"`

	// Status is the free-text profile status, up to 500 characters.
	Status string `json:"status"`

	// IsOnline is derived by the server, never set by the client.
	IsOnline bool `json:"isOnline"`
}

// Friend is a user as seen from a friends list.
type Friend struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`

	// Status is the presence indicator ("online"/"offline").
	Status string `json:"status"`

	// StatusText is the friend's free-text profile status.
	StatusText string `json:"statusText"`

	IsOnline bool `json:"isOnline"`
}

// Chat types accepted by the backend.
const (
	ChatTypeDirect = "direct"
	ChatTypeGroup  = "group"
)

// Chat is a conversation the current user participates in.
type Chat struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Avatar          string   `json:"avatar"`
	LastMessage     string   `json:"lastMessage,omitempty"`
	UnreadCount     int      `json:"unreadCount"`
	LastMessageTime string   `json:"lastMessageTime"`
	Participants    []string `json:"participants"`
	Type            string   `json:"type"`
}

// Sender is the embedded author info attached to a message.
type Sender struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// Message is a single chat message.
type Message struct {
	ID        string  `json:"id"`
	ChatID    string  `json:"chatId"`
	SenderID  string  `json:"senderId"`
	Text      string  `json:"text"`
	Timestamp string  `json:"timestamp"`
	Sender    *Sender `json:"sender,omitempty"`
}

// MessagesPage is the paginated result of a chat history fetch.
type MessagesPage struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	HasMore  bool      `json:"hasMore"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Nickname        string `json:"nickname"`
	Login           string `json:"login"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Status   *string `json:"status,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// ChatCreate is the payload for creating a new conversation.
type ChatCreate struct {
	Name           string   `json:"name,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	ParticipantIDs []string `json:"participantIds"`
	Type           string   `json:"type,omitempty"`
}
