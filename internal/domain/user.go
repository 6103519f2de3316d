package domain

import "context"

type ContextKey string

const IdentityContextKey ContextKey = "identity"

// Identity is the signed-in staff member behind a request, if any.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsPrivileged reports whether the identity may use the admin console.
func (i *Identity) IsPrivileged() bool {
	if i == nil {
		return false
	}
	for _, r := range StaffRoles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(IdentityContextKey).(*Identity)
	return id
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, id)
}
