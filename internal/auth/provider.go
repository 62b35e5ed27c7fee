package auth

import (
	"context"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
)

type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
