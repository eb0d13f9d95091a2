package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	GenderKey contextKey = "gender"
	RoleKey   contextKey = "role"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// GetGenderFromContext returns the declared gender carried by the identity
// token. The value is opaque to this service; it is stamped onto seats as-is.
func GetGenderFromContext(ctx context.Context) (string, bool) {
	genderVal := ctx.Value(GenderKey)
	if genderVal == nil {
		return "", false
	}

	gender, ok := genderVal.(string)
	return gender, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetIdentityContext(ctx context.Context, userID uuid.UUID, gender, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, GenderKey, gender)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
