package shared

import "context"

type ownerContextKey struct{}

// ContextWithOwner stores the authenticated owner email in context.
func ContextWithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerContextKey{}, owner)
}

// OwnerFromContext extracts the owner email from context. Empty when the
// request carried no identity.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerContextKey{}).(string)
	return owner
}
