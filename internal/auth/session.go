package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/hitoshi/formgate/internal/model"
)

// SessionStore はログインセッションをメモリ上で管理する。
// 単一プロセス運用を前提とし、プロセス再起動で全セッションは失効する。
// Cookie値にはセッションIDにHMAC-SHA256署名を付与するため、
// 署名鍵を知らない限りCookieの偽造ではセッションを解決できない。
type SessionStore struct {
	secret []byte
	maxAge time.Duration

	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionStore はSessionStoreを生成する。
func NewSessionStore(secret string, maxAge time.Duration) *SessionStore {
	return &SessionStore{
		secret:   []byte(secret),
		maxAge:   maxAge,
		sessions: make(map[string]*model.Session),
	}
}

// Create は指定Identityの新しいセッションを発行する。
func (s *SessionStore) Create(identity model.Identity) (*model.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		ID:        id,
		Identity:  identity,
		ExpiresAt: now.Add(s.maxAge),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session, nil
}

// Find は指定IDのセッションを返す。未知のID・期限切れの場合はnilを返す。
// 期限切れセッションはこの時点で破棄される。
func (s *SessionStore) Find(id string) *model.Session {
	s.mu.RLock()
	session := s.sessions[id]
	s.mu.RUnlock()

	if session == nil {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		s.Delete(id)
		return nil
	}
	return session
}

// Delete は指定IDのセッションを破棄する。存在しないIDは無視する。
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// CookieValue はセッションIDに署名を付与したCookie値を返す。
// フォーマットは "<id>.<hex(hmac-sha256(id))>"。
func (s *SessionStore) CookieValue(id string) string {
	return id + "." + s.sign(id)
}

// ResolveCookie はCookie値の署名を検証し、対応するセッションを返す。
// 署名の不一致・不正なフォーマット・未知のセッションはnilを返す。
func (s *SessionStore) ResolveCookie(value string) *model.Session {
	id, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return nil
	}
	return s.Find(id)
}

// RevokeCookie はCookie値に対応するセッションを破棄する。
// 破棄は冪等で無害なため、署名の検証は行わない。
func (s *SessionStore) RevokeCookie(value string) {
	id, _, _ := strings.Cut(value, ".")
	s.Delete(id)
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
