/*
Package handler provides the HTTP handlers of the АлёГараж development
backend.

This file implements the authentication endpoints.
*/
package handler

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"alegarazh/internal/app/db"
	"alegarazh/internal/app/forms"
	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/auth/jwt"
	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/randx"
	"alegarazh/internal/pkg/req"
	"alegarazh/internal/pkg/resp"
)

// userToAPI converts a storage row into the wire representation.
func userToAPI(u db.User) model.User {
	return model.User{
		ID:       u.ID,
		Nickname: u.Nickname,
		Login:    u.Login,
		Avatar:   u.Avatar,
		Status:   u.Status,
		IsOnline: u.IsOnline,
	}
}

// issueToken signs a bearer token for the user.
func issueToken(deps *AppDeps, u db.User) (string, error) {
	payload := &jwt.Payload{ID: u.ID, Nickname: u.Nickname}
	return jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.TokenExpiration)
}

// HandleRegister creates a new account and signs the user in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.RegisterRequest
		if appErr := req.BindJSON(w, r, &input); appErr != nil {
			resp.Error(w, appErr)
			return
		}

		// Server-side validation mirrors the client's field validators.
		if !forms.ValidateNickname(input.Nickname).IsValid {
			resp.Error(w, errs.New(errs.ErrNicknameInvalid))
			return
		}
		if !forms.ValidateLogin(input.Login).IsValid {
			resp.Error(w, errs.New(errs.ErrEmailInvalid))
			return
		}
		if !forms.ValidatePassword(input.Password).IsValid {
			resp.Error(w, errs.New(errs.ErrWeakPassword))
			return
		}
		if !forms.ValidateConfirmPassword(input.Password, input.ConfirmPassword).IsValid {
			resp.Error(w, errs.New(errs.ErrPasswordMismatch))
			return
		}

		ctx := r.Context()

		taken, err := deps.Store.LoginExists(ctx, input.Login)
		if err != nil {
			logx.Error(err, "register: login existence check failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}
		if taken {
			resp.Error(w, errs.New(errs.ErrEmailTaken))
			return
		}

		taken, err = deps.Store.NicknameExists(ctx, input.Nickname, "")
		if err != nil {
			logx.Error(err, "register: nickname existence check failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}
		if taken {
			resp.Error(w, errs.New(errs.ErrNicknameTaken))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		avatar := ""
		if seed, seedErr := randx.AvatarSeed(); seedErr == nil {
			avatar = randx.DefaultAvatarURL(seed)
		}

		user := db.User{
			ID:           randx.ID(),
			Login:        input.Login,
			Nickname:     input.Nickname,
			PasswordHash: string(hashed),
			Avatar:       avatar,
			IsOnline:     true,
			CreatedAt:    time.Now().UTC(),
		}

		if err := deps.Store.CreateUser(ctx, user); err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("register conflict after existence check", "login", input.Login)
				resp.Error(w, errs.New(errs.ErrEmailTaken))
				return
			}
			logx.Error(err, "register: failed to create user")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		token, err := issueToken(deps, user)
		if err != nil {
			logx.Error(err, "register: token generation failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, model.AuthResponse{Token: token, User: userToAPI(user)})
	}
}

// loginInput is the login request body.
type loginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a bearer token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input loginInput
		if appErr := req.BindJSON(w, r, &input); appErr != nil {
			resp.Error(w, appErr)
			return
		}

		ctx := r.Context()

		user, err := deps.Store.GetUserByLogin(ctx, input.Login)
		if err != nil {
			if !errors.Is(err, db.ErrNotFound) {
				logx.Error(err, "login: user fetch failed")
			}
			resp.Error(w, errs.New(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "login", input.Login)
			resp.Error(w, errs.New(errs.ErrInvalidCredentials))
			return
		}

		if err := deps.Store.SetOnline(ctx, user.ID, true); err != nil {
			logx.Error(err, "login: failed to update presence", "user_id", user.ID)
		}
		user.IsOnline = true

		token, err := issueToken(deps, user)
		if err != nil {
			logx.Error(err, "login: token generation failed")
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, model.AuthResponse{Token: token, User: userToAPI(user)})
	}
}

// HandleLogout marks the user offline. The token itself stays valid until it
// expires; the client discards it locally.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		if err := deps.Store.SetOnline(r.Context(), identity.ID, false); err != nil {
			logx.Error(err, "logout: failed to update presence", "user_id", identity.ID)
		}

		resp.Success(w, map[string]bool{"success": true})
	}
}

// HandleMe returns the profile of the token holder.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.PayloadFromContext(r)

		user, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				resp.Error(w, errs.New(errs.ErrUnauthorized))
				return
			}
			logx.Error(err, "me: user fetch failed", "user_id", identity.ID)
			resp.Error(w, errs.New(errs.ErrUnknown))
			return
		}

		resp.Success(w, userToAPI(user))
	}
}
