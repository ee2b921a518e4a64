package auth

import (
	"testing"
	"time"

	"github.com/inkwell-app/inkwell-backend/errs"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	codec, err := NewCodec(secret)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	want := Identity{UID: "u1", Email: "a@b.com"}
	token, err := codec.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if token == "" {
		t.Fatal("Encode returned empty token")
	}

	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	issued := time.Now()
	codec.now = func() time.Time { return issued }
	token, err := codec.Encode(Identity{UID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Still valid just inside the TTL.
	codec.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
	if _, err := codec.Decode(token); err != nil {
		t.Fatalf("Decode within TTL: %v", err)
	}

	// Rejected past the TTL.
	codec.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	_, err = codec.Decode(token)
	if err == nil {
		t.Fatal("Decode accepted an expired token")
	}
	if !errs.IsUnauthorized(err) {
		t.Errorf("expired token error = %v, want unauthorized", err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	token, err := newTestCodec(t, "secret-a").Encode(Identity{UID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = newTestCodec(t, "secret-b").Decode(token)
	if err == nil {
		t.Fatal("Decode accepted a token signed with a different secret")
	}
	if !errs.IsUnauthorized(err) {
		t.Errorf("bad signature error = %v, want unauthorized", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	codec := newTestCodec(t, "test-secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(token); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", token)
		}
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec(""); err == nil {
		t.Fatal("NewCodec accepted an empty secret")
	}
}
