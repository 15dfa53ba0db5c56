package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"alegarazh/internal/app/db"
	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/auth/jwt"
	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/resp"
)

// friendToAPI converts a user row into the friends-list representation:
// Status carries presence, StatusText the free-text profile status.
func friendToAPI(u db.User) model.Friend {
	status := "offline"
	if u.IsOnline {
		status = "online"
	}

	return model.Friend{
		ID:         u.ID,
		Nickname:   u.Nickname,
		Avatar:     u.Avatar,
		Status:     status,
		StatusText: u.Status,
		IsOnline:   u.IsOnline,
	}
}

func friendsToAPI(users []db.User) []model.Friend {
	out := make([]model.Friend, 0, len(users))
	for _, u := range users {
		out = append(out, friendToAPI(u))
	}
	return out
}

// HandleMyFriends lists the requester's friends.
func HandleMyFriends(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		users, err := deps.Store.ListFriends(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "friends: list failed", "user_id", identity.ID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, friendsToAPI(users))
	}
}

// HandleSearchFriends filters the friends list by the q query parameter.
func HandleSearchFriends(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)
		query := r.URL.Query().Get("q")

		users, err := deps.Store.SearchFriends(r.Context(), identity.ID, query)
		if err != nil {
			logx.Error(err, "friends: search failed", "user_id", identity.ID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, friendsToAPI(users))
	}
}

// HandleAddFriend adds the user from the URL to the requester's friends list.
func HandleAddFriend(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)
		friendID := chi.URLParam(r, "id")
		ctx := r.Context()

		if friendID == identity.ID {
			resp.Error(w, errs.New(errs.ErrSelfFriend))
			return
		}

		if _, err := deps.Store.GetUserByID(ctx, friendID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.Error(w, errs.New(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "friends: target fetch failed", "friend_id", friendID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		already, err := deps.Store.IsFriend(ctx, identity.ID, friendID)
		if err != nil {
			logx.Error(err, "friends: friendship check failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}
		if already {
			resp.Error(w, errs.New(errs.ErrAlreadyFriends))
			return
		}

		if err := deps.Store.AddFriend(ctx, identity.ID, friendID); err != nil {
			if db.IsUniqueViolation(err) {
				resp.Error(w, errs.New(errs.ErrAlreadyFriends))
				return
			}
			logx.Error(err, "friends: insert failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, map[string]bool{"success": true})
	}
}

// HandleRemoveFriend removes the user from the requester's friends list.
func HandleRemoveFriend(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)
		friendID := chi.URLParam(r, "id")

		if err := deps.Store.RemoveFriend(r.Context(), identity.ID, friendID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.Error(w, errs.New(errs.ErrNotFriends))
				return
			}
			logx.Error(err, "friends: delete failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, map[string]bool{"success": true})
	}
}
