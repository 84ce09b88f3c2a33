// Package auth はOAuth認証フローとセッション管理を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/formgate/internal/model"
)

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをトークンに交換し、生のプロフィールを取得する。
	ExchangeCode(ctx context.Context, code string) (model.Profile, error)
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	oauth    OAuthProvider
	sessions *SessionStore
}

// NewService はServiceを生成する。
func NewService(oauth OAuthProvider, sessions *SessionStore) *Service {
	return &Service{
		oauth:    oauth,
		sessions: sessions,
	}
}

// GetLoginURL はOAuth認証URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// HandleCallback はOAuthコールバックを処理し、セッションを発行する。
// 認可コードをトークンに交換し、プロフィールからIdentityを解決する。
// 許可リストの照合は呼び出し側（ハンドラー）の責務であり、ここでは行わない。
func (s *Service) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	// 1. 認可コードをトークンに交換し、プロフィールを取得
	profile, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	// 2. プロフィールからIdentityを解決
	identity := ResolveIdentity(profile)

	// 3. セッションを発行
	session, err := s.sessions.Create(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user logged in",
		slog.String("discord_id", identity.ID),
		slog.String("username", identity.Username),
	)

	return session, nil
}

// CookieValue はセッションIDに対応する署名付きCookie値を返す。
func (s *Service) CookieValue(sessionID string) string {
	return s.sessions.CookieValue(sessionID)
}

// Revoke は指定IDのセッションを破棄する。
func (s *Service) Revoke(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Logout はCookie値に対応するセッションを破棄する。
func (s *Service) Logout(cookieValue string) {
	s.sessions.RevokeCookie(cookieValue)
	slog.Info("user logged out")
}
