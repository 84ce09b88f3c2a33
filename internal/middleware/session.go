// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/formgate/internal/model"
)

const sessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みIdentityを格納するためのキー。
var identityContextKey = contextKey("identity")

// SessionResolver は署名付きCookie値からセッションを解決するインターフェース。
// auth.SessionStoreの部分集合として定義する。
type SessionResolver interface {
	ResolveCookie(value string) *model.Session
}

// NewSessionMiddleware は確立済みセッションを要求するミドルウェアを返す。
// セッションが無い・無効な場合は/loginへリダイレクトする。
// これはエラーではなく制御フローであり、エラーページは返さない。
// 解決したIdentityをリクエストコンテキストへ注入する。
func NewSessionMiddleware(sessions SessionResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. CookieからセッションIDを取得
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			// 2. 署名を検証してセッションを解決
			session := sessions.ResolveCookie(cookie.Value)
			if session == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			// 3. Identityをコンテキストに注入
			ctx := context.WithValue(r.Context(), identityContextKey, session.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストからIdentityを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (model.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	if !ok {
		return model.Identity{}, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストにIdentityを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
