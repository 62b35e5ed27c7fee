package auth

import (
	"context"
	"errors"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

// LocalAuthProvider accepts a single static token. Development only.
type LocalAuthProvider struct {
	token  string
	logger internal.Logger
}

func NewLocalAuthProvider(token string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{token: token, logger: logger}
}

func (p *LocalAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	if token != p.token {
		p.logger.Warnf("rejected token %q", token)
		return nil, errors.New("invalid token")
	}
	return &internal.User{ID: "u1", Token: p.token, Name: "Demo Parent"}, nil
}

func (p *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	return nil, errors.New("remote validation not supported by the local provider")
}
