package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
)

// AllowlistChecker は許可リスト照合のインターフェース。
// store.AllowlistStoreの部分集合として定義する。
type AllowlistChecker interface {
	Contains(id string) bool
}

// SessionRevoker はCookie値に対応するセッションを破棄するインターフェース。
type SessionRevoker interface {
	RevokeCookie(value string)
}

// DenialRecorder は認可拒否メトリクスの記録インターフェース。
type DenialRecorder interface {
	RecordAuthDenied()
}

// NewAllowlistMiddleware は許可リスト照合を行うミドルウェアを返す。
// セッションミドルウェアの後に配置する。
// リストはリクエストごとにホットリードされるため、運用者によるファイル編集は
// 再ログインを待たずに反映される。照合に失敗した場合はセッションを破棄し、
// 拒否したIDを明示した403を返す。
func NewAllowlistMiddleware(allowlist AllowlistChecker, sessions SessionRevoker, metrics DenialRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := IdentityFromContext(r.Context())
			if err == nil && allowlist.Contains(identity.ID) {
				next.ServeHTTP(w, r)
				return
			}

			// 不許可: セッションを先に破棄してから403を返す。
			// 以降のリクエストはセッション無しとして扱われる。
			if cookie, cookieErr := r.Cookie(sessionCookieName); cookieErr == nil {
				sessions.RevokeCookie(cookie.Value)
			}
			ClearSessionCookie(w)

			metrics.RecordAuthDenied()
			slog.Warn("request rejected by allowlist",
				slog.String("discord_id", identity.ID),
				slog.String("path", r.URL.Path),
			)

			WriteNotAuthorized(w, identity.ID)
		})
	}
}

// WriteNotAuthorized は許可リスト外のユーザーへの403レスポンスを書き込む。
// 本文には拒否したIDを含める。IDが取得できない場合は"unknown"を用いる。
func WriteNotAuthorized(w http.ResponseWriter, id string) {
	if id == "" {
		id = "unknown"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprintf(w, "Not authorized. Your Discord ID (%s) is not in allowed_logins.json", id)
}

// ClearSessionCookie はセッションCookieを失効させる。
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
