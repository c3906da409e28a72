package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/you/authsvc/domain"
)

// GoogleVerifierImpl implements domain.FederatedVerifier against Google's
// ID token endpoint. Signature, expiry and audience checks are delegated to
// the idtoken validator; any failure maps to ErrFederatedTokenInvalid.
type GoogleVerifierImpl struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifier creates a new Google ID token verifier. The audience is
// the OAuth client ID the tokens must be issued for.
func NewGoogleVerifier(audience string) domain.FederatedVerifier {
	return &GoogleVerifierImpl{
		audience: audience,
		validate: idtoken.Validate,
	}
}

// Verify implements domain.FederatedVerifier
func (g *GoogleVerifierImpl) Verify(ctx context.Context, token string) (*domain.FederatedIdentity, error) {
	if token == "" {
		return nil, domain.ErrFederatedTokenInvalid
	}

	payload, err := g.validate(ctx, token, g.audience)
	if err != nil {
		return nil, domain.ErrFederatedTokenInvalid
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, domain.ErrFederatedTokenInvalid
	}
	name, _ := payload.Claims["name"].(string)

	return &domain.FederatedIdentity{
		Email: domain.NormalizeEmail(email),
		Name:  name,
	}, nil
}
