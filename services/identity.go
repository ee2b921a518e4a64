// Package services holds clients for external collaborators. The identity
// provider owns credential storage and password verification; this service
// only relays email/password pairs and reports provider errors verbatim.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/errs"
)

// Provider creates accounts and verifies credentials against the external
// identity provider.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (auth.Identity, error)
	SignIn(ctx context.Context, email, password string) (auth.Identity, error)
}

const defaultIdentityBaseURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuth talks to the Identity Toolkit REST API. Failures carry the
// provider's symbolic error code (EMAIL_EXISTS, INVALID_LOGIN_CREDENTIALS,
// WEAK_PASSWORD, ...) through to the caller as an errs.ProviderError.
type FirebaseAuth struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewFirebaseAuth(apiKey string) *FirebaseAuth {
	return &FirebaseAuth{
		apiKey:  apiKey,
		baseURL: defaultIdentityBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  log.With().Str("service", "firebaseAuth").Logger(),
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type providerErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseAuth) SignUp(ctx context.Context, email, password string) (auth.Identity, error) {
	return f.post(ctx, "signUp", email, password)
}

func (f *FirebaseAuth) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	return f.post(ctx, "signInWithPassword", email, password)
}

func (f *FirebaseAuth) post(ctx context.Context, action, email, password string) (auth.Identity, error) {
	payload, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return auth.Identity{}, fmt.Errorf("marshal %s request: %w", action, err)
	}

	url := fmt.Sprintf("%s/accounts:%s?key=%s", f.baseURL, action, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return auth.Identity{}, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var provErr providerErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&provErr); err != nil || provErr.Error.Message == "" {
			f.logger.Error().Int("status", resp.StatusCode).Str("action", action).
				Msg("identity provider returned an undecodable error")
			return auth.Identity{}, errs.NewInternalError("identity provider request failed")
		}
		f.logger.Warn().Str("action", action).Str("code", provErr.Error.Message).
			Msg("identity provider rejected request")
		return auth.Identity{}, errs.NewProviderError(provErr.Error.Message, provErr.Error.Message)
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return auth.Identity{}, fmt.Errorf("decode %s response: %w", action, err)
	}
	return auth.Identity{UID: account.LocalID, Email: account.Email}, nil
}
