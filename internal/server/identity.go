package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/claude/liftlog/internal/auth"
	"tailscale.com/client/tailscale/apitype"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo is the caller identity as reported by the identity provider.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

// devUserInfo is the identity used when auth is disabled.
var devUserInfo = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// WhoIsClient resolves a tailnet peer address to its user. *local.Client implements it.
type WhoIsClient interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userInfoFromContext(r *http.Request) (UserInfo, bool) {
	info, ok := r.Context().Value(userInfoKey).(UserInfo)
	return info, ok
}

// mustUserID writes 401 and returns false when the request is unauthenticated.
func mustUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return 0, false
	}
	return id, true
}

// ProvisionDevUser creates (or finds) the local user that dev mode signs every
// request in as, and returns its ID.
func ProvisionDevUser(ctx context.Context, users userProvisioner) (int, error) {
	id, err := users.GetOrCreateUser(ctx, devUserInfo.Login, devUserInfo.DisplayName)
	if err != nil {
		return 0, fmt.Errorf("provisioning dev user: %w", err)
	}
	return id, nil
}

// DevIdentity authenticates every request as userID, which must come from
// ProvisionDevUser. A zero ID leaves requests unauthenticated.
func DevIdentity(userID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithUserID(r.Context(), userID)
			ctx = context.WithValue(ctx, userInfoKey, devUserInfo)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenIdentity authenticates requests carrying a valid Bearer session token.
func TokenIdentity(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			id, err := tokens.Parse(raw)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// userProvisioner is the subset of Store TailscaleIdentity needs.
type userProvisioner interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

// TailscaleIdentity resolves the tailnet user behind each connection and
// provisions a local user for it on first sight.
func TailscaleIdentity(whois WhoIsClient, users userProvisioner, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, err := whois.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil || who == nil || who.UserProfile == nil {
				log.Warn("whois failed", "remote", r.RemoteAddr, "error", err)
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unknown tailnet peer"})
				return
			}
			info := UserInfo{Login: who.UserProfile.LoginName, DisplayName: who.UserProfile.DisplayName}

			id, err := users.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
			if err != nil {
				log.Error("provisioning user", "login", info.Login, "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not resolve user"})
				return
			}

			ctx := WithUserID(r.Context(), id)
			ctx = context.WithValue(ctx, userInfoKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
