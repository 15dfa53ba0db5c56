package handler

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"alegarazh/internal/app/db"
	"alegarazh/internal/app/forms"
	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/auth/jwt"
	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/req"
	"alegarazh/internal/pkg/resp"
)

// MaxStatusLen is the profile status length limit, in runes.
const MaxStatusLen = 500

// HandleUpdateProfile applies a partial profile change for the token holder.
// Absent fields stay untouched; the login is immutable and not accepted here.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		var input model.ProfileUpdate
		if appErr := req.BindJSON(w, r, &input); appErr != nil {
			resp.Error(w, appErr)
			return
		}

		ctx := r.Context()

		if input.Nickname != nil {
			if !forms.ValidateNickname(*input.Nickname).IsValid {
				resp.Error(w, errs.New(errs.ErrNicknameInvalid))
				return
			}

			taken, err := deps.Store.NicknameExists(ctx, *input.Nickname, identity.ID)
			if err != nil {
				logx.Error(err, "update_profile: nickname check failed")
				resp.Error(w, errs.New(errs.ErrUnknown))
				return
			}
			if taken {
				resp.Error(w, errs.New(errs.ErrNicknameTaken))
				return
			}
		}

		if input.Status != nil && utf8.RuneCountInString(*input.Status) > MaxStatusLen {
			resp.Error(w, errs.New(errs.ErrStatusTooLong))
			return
		}

		user, err := deps.Store.UpdateUserProfile(ctx, identity.ID, input.Nickname, input.Status, input.Avatar)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.Error(w, errs.New(errs.ErrUnauthorized))
				return
			}
			logx.Error(err, "update_profile: update failed", "user_id", identity.ID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, userToAPI(user))
	}
}

// HandleSearchUsers lists everyone except the requester, for the add-friend
// screen.
func HandleSearchUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		users, err := deps.Store.SearchUsers(r.Context(), identity.ID)
		if err != nil {
			logx.Error(err, "search_users: query failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		out := make([]model.User, 0, len(users))
		for _, u := range users {
			out = append(out, userToAPI(u))
		}

		resp.Success(w, out)
	}
}
