// Package clinicctx threads the authenticated clinic through request contexts.
package clinicctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey struct{}

func WithClinicID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func ClinicIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(contextKey{}).(snowflake.ID)
	return id, ok
}
