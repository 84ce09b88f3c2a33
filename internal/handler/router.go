package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/formgate/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger          *slog.Logger
	SessionResolver middleware.SessionResolver
	Allowlist       middleware.AllowlistChecker
	SessionRevoker  middleware.SessionRevoker

	// メトリクス
	StatusRecorder middleware.StatusRecorder
	DenialRecorder middleware.DenialRecorder
	MetricsHandler http.Handler

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// フォーム
	FormService       FormServiceInterface
	SubmitRedirectURL string
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → (保護ルートのみ) Session → Allowlist
//
// ログイン関連ルート（/login、/auth/*）と運用ルート（/health、/metrics）は
// セッション検証の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))

	authHandler := NewAuthHandler(deps.AuthService, deps.Allowlist, deps.DenialRecorder, deps.AuthConfig)
	formHandler := NewFormHandler(deps.FormService, deps.SubmitRedirectURL)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Get("/login", authHandler.LoginPage)
	r.Get("/logout", authHandler.Logout)
	r.Get("/auth/discord", authHandler.Login)
	r.Get("/auth/discord/callback", authHandler.Callback)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → Allowlist
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionResolver))
		r.Use(middleware.NewAllowlistMiddleware(deps.Allowlist, deps.SessionRevoker, deps.DenialRecorder))

		r.Get("/", formHandler.Index)
		r.Post("/submit", formHandler.Submit)
		r.Get("/submissions", formHandler.Submissions)
	})

	return r
}

// healthHandler は死活監視用のエンドポイント。
// GET /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
