package submission

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/formgate/internal/model"
)

// フォームフィールドの最大文字数。サロゲートペアを含む多バイト文字も
// 1文字として数えるため、バイト長ではなく文字数で判定する。
const (
	MaxFavoriteColorLength = 50
	MaxMessageLength       = 500
)

// Store は投稿の永続化インターフェース。
type Store interface {
	Append(sub *model.Submission) error
	Load() *model.SubmissionLog
	Last() *model.Submission
}

// Sanitizer はフォーム入力のサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(input string) string
}

// Recorder は投稿の受理・拒否メトリクスの記録インターフェース。
type Recorder interface {
	RecordSubmissionAccepted()
	RecordSubmissionRejected(reason string)
}

// Service はフォーム投稿の検証・サニタイズ・永続化を担う。
type Service struct {
	store     Store
	sanitizer Sanitizer
	metrics   Recorder
	now       func() time.Time // テストで固定時刻を注入するためのフック
}

// NewService は新しいServiceを生成する。
func NewService(store Store, sanitizer Sanitizer, metrics Recorder) *Service {
	return &Service{
		store:     store,
		sanitizer: sanitizer,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Submit はフォーム投稿を検証してログに追記する。
// 前後の空白を除去した上で、必須チェック、文字数チェック、サニタイズの順に処理する。
// 検証エラーの場合は*model.ValidationErrorを返し、投稿は記録されない。
func (s *Service) Submit(identity model.Identity, favoriteColor, message string) (*model.Submission, error) {
	favoriteColor = strings.TrimSpace(favoriteColor)
	message = strings.TrimSpace(message)

	if favoriteColor == "" || message == "" {
		s.metrics.RecordSubmissionRejected(string(model.ValidationMissingField))
		return nil, model.NewMissingFieldError()
	}

	if utf8.RuneCountInString(favoriteColor) > MaxFavoriteColorLength {
		s.metrics.RecordSubmissionRejected(string(model.ValidationTooLong))
		return nil, model.NewTooLongError("favoriteColor", MaxFavoriteColorLength)
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		s.metrics.RecordSubmissionRejected(string(model.ValidationTooLong))
		return nil, model.NewTooLongError("message", MaxMessageLength)
	}

	sub := &model.Submission{
		ID:                uuid.New().String(),
		SubmittedAt:       s.now().UTC().Format(time.RFC3339),
		DiscordID:         identity.ID,
		DiscordUsername:   identity.Username,
		DiscordGlobalName: identity.DisplayName,
		FavoriteColor:     s.sanitizer.Sanitize(favoriteColor),
		Message:           s.sanitizer.Sanitize(message),
	}

	if err := s.store.Append(sub); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	s.metrics.RecordSubmissionAccepted()
	return sub, nil
}

// Log は投稿ログ全体を返す。
func (s *Service) Log() *model.SubmissionLog {
	return s.store.Load()
}

// Last は最新の投稿を返す。投稿が無い場合はnilを返す。
func (s *Service) Last() *model.Submission {
	return s.store.Last()
}
