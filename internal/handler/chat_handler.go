package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"alegarazh/internal/app/db"
	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/auth/jwt"
	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/randx"
	"alegarazh/internal/pkg/req"
	"alegarazh/internal/pkg/resp"
)

const (
	// MaxMessageLen is the chat message length limit, in runes.
	MaxMessageLen = 2000

	// DefaultPageLimit is the message page size when the client sends none.
	DefaultPageLimit = 50

	// MaxPageLimit caps the message page size.
	MaxPageLimit = 100
)

// chatToAPI converts a chat row to the wire representation. A direct chat
// without an explicit name takes the other participant's nickname.
func chatToAPI(deps *AppDeps, r *http.Request, chat db.Chat, viewerID string) model.Chat {
	name := chat.Name
	avatar := chat.Avatar

	if chat.Type == model.ChatTypeDirect && name == "" {
		for _, participantID := range chat.Participants {
			if participantID == viewerID {
				continue
			}
			if other, err := deps.Store.GetUserByID(r.Context(), participantID); err == nil {
				name = other.Nickname
				if avatar == "" {
					avatar = other.Avatar
				}
			}
			break
		}
	}

	out := model.Chat{
		ID:           chat.ID,
		Name:         name,
		Avatar:       avatar,
		LastMessage:  chat.LastMessage,
		Participants: chat.Participants,
		Type:         chat.Type,
	}
	if !chat.LastMessageTime.IsZero() {
		out.LastMessageTime = chat.LastMessageTime.Format(time.RFC3339)
	}
	return out
}

func messageToAPI(m db.Message) model.Message {
	return model.Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Timestamp: m.CreatedAt.Format(time.RFC3339),
		Sender: &model.Sender{
			ID:       m.SenderID,
			Nickname: m.SenderNickname,
			Avatar:   m.SenderAvatar,
		},
	}
}

// requireParticipant loads the membership check shared by the chat routes.
// A chat the requester is not part of is indistinguishable from a missing one.
func requireParticipant(deps *AppDeps, w http.ResponseWriter, r *http.Request, chatID, userID string) bool {
	ok, err := deps.Store.IsParticipant(r.Context(), chatID, userID)
	if err != nil {
		logx.Error(err, "chats: membership check failed", "chat_id", chatID)
		resp.Error(w, errs.New(errs.ErrUnknown))
		return false
	}
	if !ok {
		resp.Error(w, errs.New(errs.ErrChatNotFound))
		return false
	}
	return true
}

// HandleMyChats lists the requester's conversations, most recent first.
func HandleMyChats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		chats, err := deps.Store.ListChats(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "chats: list failed", "user_id", identity.ID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		out := make([]model.Chat, 0, len(chats))
		for _, chat := range chats {
			out = append(out, chatToAPI(deps, r, chat, identity.ID))
		}

		resp.Success(w, out)
	}
}

// HandleCreateChat creates a direct or group conversation. The requester is
// always included as a participant.
func HandleCreateChat(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		var input model.ChatCreate
		if appErr := req.BindJSON(w, r, &input); appErr != nil {
			resp.Error(w, appErr)
			return
		}

		if len(input.ParticipantIDs) == 0 {
			resp.Error(w, errs.New(errs.ErrChatNoParticipants))
			return
		}

		ctx := r.Context()

		// Dedupe and verify participants, with the requester always included.
		seen := map[string]bool{identity.ID: true}
		participants := []string{identity.ID}
		for _, participantID := range input.ParticipantIDs {
			if seen[participantID] {
				continue
			}
			if _, err := deps.Store.GetUserByID(ctx, participantID); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					resp.Error(w, errs.New(errs.ErrUserNotFound))
					return
				}
				logx.Error(err, "chats: participant fetch failed", "user_id", participantID)
				resp.Error(w, errs.New(errs.ErrUnknown))
				return
			}
			seen[participantID] = true
			participants = append(participants, participantID)
		}

		chatType := input.Type
		switch chatType {
		case "":
			chatType = model.ChatTypeDirect
			if len(participants) > 2 {
				chatType = model.ChatTypeGroup
			}
		case model.ChatTypeDirect, model.ChatTypeGroup:
		default:
			resp.Error(w, errs.New(errs.ErrChatTypeInvalid))
			return
		}

		chat := db.Chat{
			ID:           randx.ID(),
			Name:         strings.TrimSpace(input.Name),
			Avatar:       input.Avatar,
			Type:         chatType,
			CreatedAt:    time.Now().UTC(),
			Participants: participants,
		}

		if err := deps.Store.CreateChat(ctx, chat); err != nil {
			logx.Error(err, "chats: create failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, chatToAPI(deps, r, chat, identity.ID))
	}
}

// HandleChatMessages returns one page of a chat's history, newest first.
func HandleChatMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)
		chatID := chi.URLParam(r, "id")

		if !requireParticipant(deps, w, r, chatID, identity.ID) {
			return
		}

		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", DefaultPageLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > MaxPageLimit {
			limit = DefaultPageLimit
		}

		ctx := r.Context()

		total, err := deps.Store.CountMessages(ctx, chatID)
		if err != nil {
			logx.Error(err, "chats: message count failed", "chat_id", chatID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		messages, err := deps.Store.ListMessages(ctx, chatID, page, limit)
		if err != nil {
			logx.Error(err, "chats: message list failed", "chat_id", chatID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		out := make([]model.Message, 0, len(messages))
		for _, m := range messages {
			out = append(out, messageToAPI(m))
		}

		resp.Success(w, model.MessagesPage{
			Messages: out,
			Total:    total,
			Page:     page,
			Limit:    limit,
			HasMore:  page*limit < total,
		})
	}
}

// sendMessageInput is the message creation body.
type sendMessageInput struct {
	Text string `json:"text"`
}

// HandleSendMessage posts a message into a chat.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)
		chatID := chi.URLParam(r, "id")

		if !requireParticipant(deps, w, r, chatID, identity.ID) {
			return
		}

		var input sendMessageInput
		if appErr := req.BindJSON(w, r, &input); appErr != nil {
			resp.Error(w, appErr)
			return
		}

		text := strings.TrimSpace(input.Text)
		if text == "" {
			resp.Error(w, errs.New(errs.ErrMessageEmpty))
			return
		}
		if utf8.RuneCountInString(text) > MaxMessageLen {
			resp.Error(w, errs.New(errs.ErrMessageTooLong))
			return
		}

		message, err := deps.Store.CreateMessage(r.Context(), db.Message{
			ID:        randx.ID(),
			ChatID:    chatID,
			SenderID:  identity.ID,
			Text:      text,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			logx.Error(err, "chats: message insert failed", "chat_id", chatID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, messageToAPI(message))
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
