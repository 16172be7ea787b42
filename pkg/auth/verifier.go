package auth

import "context"

// TokenVerifier resolves an opaque bearer token into the stable subject
// identifier issued by the external identity provider. The rest of the
// application only ever sees the subject.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (subject string, err error)
}
