package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/services"
)

type userHandler struct {
	responder     Responder
	logger        zerolog.Logger
	provider      services.Provider
	codec         *auth.Codec
	secureCookies bool
	views         *Views
}

func newUserHandler(provider services.Provider, codec *auth.Codec, secureCookies bool, views *Views) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		provider:      provider,
		codec:         codec,
		secureCookies: secureCookies,
		views:         views,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts either a JSON body or a submitted form, since the
// login and register views post forms while API clients send JSON.
func readCredentials(r *http.Request) (credentials, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return credentials{}, errs.NewBadRequestError("malformed request body")
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return credentials{}, errs.NewBadRequestError("malformed form body")
	}
	return credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}, nil
}

func (h userHandler) showLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.views.Render(w, http.StatusOK, "login", nil); err != nil {
			h.logger.Error().Err(err).Msg("failed to render login view")
		}
	}
}

func (h userHandler) showRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.views.Render(w, http.StatusOK, "register", nil); err != nil {
			h.logger.Error().Err(err).Msg("failed to render register view")
		}
	}
}

// signup delegates account creation to the identity provider. Provider
// failures surface verbatim with the provider's error code.
func (h userHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if creds.Email == "" || creds.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		if _, err := h.provider.SignUp(r.Context(), creds.Email, creds.Password); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, map[string]string{
			"message": "User successfully created!",
		})
	}
}

// login verifies credentials with the identity provider, mints a session
// token, and sets it as the token cookie.
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if creds.Email == "" || creds.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		identity, err := h.provider.SignIn(r.Context(), creds.Email, creds.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.codec.Encode(identity)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to mint session token"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(auth.TokenTTL / time.Second),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})

		h.logger.Info().Str("uid", identity.UID).Msg("user logged in")
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Login successful",
		})
	}
}
