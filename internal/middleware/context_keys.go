package middleware

import "context"

// userIDKey is the key used to store the authenticated actor's ID in the
// request context.
const userIDKey = contextKey("userID")

// rolesKey is the key used to store the authenticated actor's roles.
const rolesKey = contextKey("roles")

// GetUserIDFromCtx retrieves the authenticated actor ID from the context.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRolesFromCtx retrieves the authenticated actor's roles from the context.
func GetRolesFromCtx(ctx context.Context) []string {
	roles, ok := ctx.Value(rolesKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

// ContextWithActor returns a context carrying the given actor id and roles.
// Used by tests and internal callers that bypass the HTTP middleware.
func ContextWithActor(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, rolesKey, roles)
}
