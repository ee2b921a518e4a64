package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell-app/inkwell-backend/errs"
)

func newTestProvider(serverURL string) *FirebaseAuth {
	return &FirebaseAuth{
		apiKey:  "test-key",
		baseURL: serverURL,
		client:  http.DefaultClient,
		logger:  zerolog.Nop(),
	}
}

func TestSignInSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("path = %q, want /accounts:signInWithPassword", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("key = %q, want test-key", key)
		}

		var body credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Email != "a@b.com" || body.Password != "hunter22" {
			t.Errorf("credentials = %q/%q", body.Email, body.Password)
		}

		json.NewEncoder(w).Encode(accountResponse{LocalID: "u1", Email: "a@b.com"})
	}))
	defer server.Close()

	identity, err := newTestProvider(server.URL).SignIn(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if identity.UID != "u1" || identity.Email != "a@b.com" {
		t.Errorf("identity = %+v", identity)
	}
}

func TestSignUpProviderErrorCodePassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).SignUp(context.Background(), "a@b.com", "hunter22")
	if err == nil {
		t.Fatal("SignUp succeeded, want provider error")
	}

	var provErr *errs.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error type = %T, want *errs.ProviderError", err)
	}
	if provErr.Code != "EMAIL_EXISTS" {
		t.Errorf("Code = %q, want EMAIL_EXISTS", provErr.Code)
	}
}

func TestSignInUndecodableError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).SignIn(context.Background(), "a@b.com", "hunter22")
	if err == nil {
		t.Fatal("SignIn succeeded, want error")
	}
	var provErr *errs.ProviderError
	if errors.As(err, &provErr) {
		t.Errorf("undecodable body produced a provider error: %v", provErr)
	}
}
