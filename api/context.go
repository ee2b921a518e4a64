package api

import (
	"context"

	"github.com/inkwell-app/inkwell-backend/auth"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity attaches the verified session identity to the context.
func ctxWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// identityFromCtx retrieves the identity the access guard attached. The
// boolean is false on routes that skipped the guard.
func identityFromCtx(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
