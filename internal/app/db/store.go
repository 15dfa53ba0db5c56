package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

// User is a user row.
type User struct {
	ID           string
	Login        string
	Nickname     string
	PasswordHash string
	Avatar       string
	Status       string
	IsOnline     bool
	CreatedAt    time.Time
}

// Chat is a chat row enriched with the data the listing endpoint needs.
type Chat struct {
	ID              string
	Name            string
	Avatar          string
	Type            string
	CreatedAt       time.Time
	Participants    []string
	LastMessage     string
	LastMessageTime time.Time
}

// Message is a message row with the sender's display info attached.
type Message struct {
	ID             string
	ChatID         string
	SenderID       string
	Text           string
	CreatedAt      time.Time
	SenderNickname string
	SenderAvatar   string
}

// Store runs all SQL against the backend database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(sqlDB *sql.DB) *Store {
	return &Store{db: sqlDB}
}

const userColumns = "id, login, nickname, password_hash, avatar, status, is_online, created_at"

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Login, &u.Nickname, &u.PasswordHash, &u.Avatar, &u.Status, &u.IsOnline, &createdAt)
	if err != nil {
		return User{}, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Login, u.Nickname, u.PasswordHash, u.Avatar, u.Status, u.IsOnline, u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by id; ErrNotFound when absent.
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user by id: %w", err)
	}
	return u, nil
}

// GetUserByLogin fetches a user by login; ErrNotFound when absent.
func (s *Store) GetUserByLogin(ctx context.Context, login string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE login = ?`, login)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user by login: %w", err)
	}
	return u, nil
}

// LoginExists reports whether a user with this login is registered.
func (s *Store) LoginExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE login = ?)`, login).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check login: %w", err)
	}
	return exists, nil
}

// NicknameExists reports whether a nickname is taken by someone other than
// excludeUserID.
func (s *Store) NicknameExists(ctx context.Context, nickname, excludeUserID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE nickname = ? AND id != ?)`,
		nickname, excludeUserID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check nickname: %w", err)
	}
	return exists, nil
}

// UpdateUserProfile applies the non-nil fields and returns the updated row.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, nickname, status, avatar *string) (User, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET
			nickname = COALESCE(?, nickname),
			status   = COALESCE(?, status),
			avatar   = COALESCE(?, avatar)
		WHERE id = ?`,
		nickname, status, avatar, id,
	)
	if err != nil {
		return User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// SetOnline flips the presence flag.
func (s *Store) SetOnline(ctx context.Context, id string, online bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET is_online = ? WHERE id = ?`, online, id)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

// SearchUsers lists all users except the requester, newest first.
func (s *Store) SearchUsers(ctx context.Context, excludeID string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id != ? ORDER BY created_at DESC`,
		excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// AddFriend records a one-directional friendship.
func (s *Store) AddFriend(ctx context.Context, userID, friendID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO friends (user_id, friend_id, created_at) VALUES (?, ?, ?)`,
		userID, friendID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend deletes the friendship; ErrNotFound when it did not exist.
func (s *Store) RemoveFriend(ctx context.Context, userID, friendID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM friends WHERE user_id = ? AND friend_id = ?`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFriend reports whether friendID is in userID's friends list.
func (s *Store) IsFriend(ctx context.Context, userID, friendID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)`,
		userID, friendID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// ListFriends returns the users in userID's friends list.
func (s *Store) ListFriends(ctx context.Context, userID string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.login, u.nickname, u.password_hash, u.avatar, u.status, u.is_online, u.created_at
		 FROM friends f
		 JOIN users u ON u.id = f.friend_id
		 WHERE f.user_id = ?
		 ORDER BY u.nickname`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// SearchFriends filters the friends list by a case-insensitive nickname
// substring.
func (s *Store) SearchFriends(ctx context.Context, userID, query string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.login, u.nickname, u.password_hash, u.avatar, u.status, u.is_online, u.created_at
		 FROM friends f
		 JOIN users u ON u.id = f.friend_id
		 WHERE f.user_id = ? AND u.nickname LIKE ? ESCAPE '\'
		 ORDER BY u.nickname`,
		userID, "%"+escapeLike(query)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search friends: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// CreateChat inserts the chat and its participant rows in one transaction.
func (s *Store) CreateChat(ctx context.Context, chat Chat) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chats (id, name, avatar, type, created_at) VALUES (?, ?, ?, ?, ?)`,
		chat.ID, chat.Name, chat.Avatar, chat.Type, chat.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}

	for _, userID := range chat.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chat_participants (chat_id, user_id) VALUES (?, ?)`,
			chat.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chat participant: %w", err)
		}
	}

	return tx.Commit()
}

// GetChat fetches a chat with its participants; ErrNotFound when absent.
func (s *Store) GetChat(ctx context.Context, chatID string) (Chat, error) {
	var chat Chat
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, avatar, type, created_at FROM chats WHERE id = ?`,
		chatID,
	).Scan(&chat.ID, &chat.Name, &chat.Avatar, &chat.Type, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Chat{}, ErrNotFound
	}
	if err != nil {
		return Chat{}, fmt.Errorf("failed to fetch chat: %w", err)
	}
	chat.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	chat.Participants, err = s.chatParticipants(ctx, chatID)
	if err != nil {
		return Chat{}, err
	}
	return chat, nil
}

// IsParticipant reports whether userID belongs to the chat.
func (s *Store) IsParticipant(ctx context.Context, chatID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_participants WHERE chat_id = ? AND user_id = ?)`,
		chatID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check chat membership: %w", err)
	}
	return exists, nil
}

// ListChats returns the chats userID participates in, most recent activity
// first, each with participants and last-message info filled in.
func (s *Store) ListChats(ctx context.Context, userID string) ([]Chat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.avatar, c.type, c.created_at,
		        COALESCE(m.text, ''), COALESCE(m.created_at, c.created_at)
		 FROM chats c
		 JOIN chat_participants cp ON cp.chat_id = c.id
		 LEFT JOIN messages m ON m.id = (
			SELECT id FROM messages WHERE chat_id = c.id ORDER BY created_at DESC, id DESC LIMIT 1
		 )
		 WHERE cp.user_id = ?
		 ORDER BY COALESCE(m.created_at, c.created_at) DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var chat Chat
		var createdAt, lastMessageTime string
		if err := rows.Scan(&chat.ID, &chat.Name, &chat.Avatar, &chat.Type, &createdAt, &chat.LastMessage, &lastMessageTime); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chat.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		chat.LastMessageTime, _ = time.Parse(time.RFC3339, lastMessageTime)
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chats: %w", err)
	}

	for i := range chats {
		chats[i].Participants, err = s.chatParticipants(ctx, chats[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return chats, nil
}

// CountMessages returns the total number of messages in a chat.
func (s *Store) CountMessages(ctx context.Context, chatID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE chat_id = ?`, chatID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return total, nil
}

// ListMessages returns one page of a chat's history, newest first.
func (s *Store) ListMessages(ctx context.Context, chatID string, page, limit int) ([]Message, error) {
	offset := (page - 1) * limit

	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.chat_id, m.sender_id, m.text, m.created_at, u.nickname, u.avatar
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.chat_id = ?
		 ORDER BY m.created_at DESC, m.id DESC
		 LIMIT ? OFFSET ?`,
		chatID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &createdAt, &m.SenderNickname, &m.SenderAvatar); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

// CreateMessage inserts a message and returns it with sender info attached.
func (s *Store) CreateMessage(ctx context.Context, m Message) (Message, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, chat_id, sender_id, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ChatID, m.SenderID, m.Text, m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	sender, err := s.GetUserByID(ctx, m.SenderID)
	if err != nil {
		return Message{}, err
	}
	m.SenderNickname = sender.Nickname
	m.SenderAvatar = sender.Avatar

	return m, nil
}

func (s *Store) chatParticipants(ctx context.Context, chatID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM chat_participants WHERE chat_id = ? ORDER BY user_id`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectUsers(rows *sql.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
