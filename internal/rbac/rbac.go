package rbac

import (
	"context"
	"net/http"
	"strings"
)

// RolePermissions is the default policy. The bot's public flow is
// unauthorized; everything behind /admin runs under these.
var RolePermissions = map[string][]string{
	"admin": {
		"questions:*",
		"institutions:*",
		"specializations:*",
		"dataset:sync",
		"broadcast:send",
		"stats:view",
	},
}

func has(role, perm string) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
		if strings.HasSuffix(p, "*") && strings.HasPrefix(perm, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

// Require enforces a single permission.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !has(role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ---- role in context ----

type ctxKey struct{}

var ctxKeyRole = ctxKey{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeyRole); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
