package submission

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/formgate/internal/model"
)

// --- モック定義 ---

type mockStore struct {
	appendFn func(sub *model.Submission) error
	loadFn   func() *model.SubmissionLog
	lastFn   func() *model.Submission
	appended []*model.Submission
}

func (m *mockStore) Append(sub *model.Submission) error {
	m.appended = append(m.appended, sub)
	if m.appendFn != nil {
		return m.appendFn(sub)
	}
	return nil
}

func (m *mockStore) Load() *model.SubmissionLog {
	if m.loadFn != nil {
		return m.loadFn()
	}
	return &model.SubmissionLog{Submissions: []*model.Submission{}}
}

func (m *mockStore) Last() *model.Submission {
	if m.lastFn != nil {
		return m.lastFn()
	}
	return nil
}

// passthroughSanitizer は入力をそのまま返す。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(input string) string { return input }

// markingSanitizer はサニタイズの適用を検証するため入力にマーカーを付ける。
type markingSanitizer struct{}

func (markingSanitizer) Sanitize(input string) string { return "clean:" + input }

type mockRecorder struct {
	accepted int
	rejected []string
}

func (m *mockRecorder) RecordSubmissionAccepted() { m.accepted++ }

func (m *mockRecorder) RecordSubmissionRejected(reason string) {
	m.rejected = append(m.rejected, reason)
}

func newTestService(store *mockStore, recorder *mockRecorder) *Service {
	svc := NewService(store, passthroughSanitizer{}, recorder)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)
	}
	return svc
}

var testIdentity = model.Identity{ID: "123", Username: "tester", DisplayName: "Tester"}

// --- テスト ---

func TestSubmit_ValidInput_AppendsSubmission(t *testing.T) {
	store := &mockStore{}
	recorder := &mockRecorder{}
	svc := newTestService(store, recorder)

	sub, err := svc.Submit(testIdentity, "blue", "hello there")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(store.appended) != 1 {
		t.Fatalf("appended = %d submissions, want 1", len(store.appended))
	}
	if sub.DiscordID != "123" {
		t.Errorf("DiscordID = %q, want %q", sub.DiscordID, "123")
	}
	if sub.DiscordUsername != "tester" {
		t.Errorf("DiscordUsername = %q, want %q", sub.DiscordUsername, "tester")
	}
	if sub.DiscordGlobalName != "Tester" {
		t.Errorf("DiscordGlobalName = %q, want %q", sub.DiscordGlobalName, "Tester")
	}
	if sub.FavoriteColor != "blue" {
		t.Errorf("FavoriteColor = %q, want %q", sub.FavoriteColor, "blue")
	}
	if sub.Message != "hello there" {
		t.Errorf("Message = %q, want %q", sub.Message, "hello there")
	}
	if sub.ID == "" {
		t.Error("ID should be assigned")
	}
	if recorder.accepted != 1 {
		t.Errorf("accepted = %d, want 1", recorder.accepted)
	}
}

func TestSubmit_TimestampIsRFC3339UTC(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, &mockRecorder{})

	sub, err := svc.Submit(testIdentity, "blue", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sub.SubmittedAt != "2025-06-15T12:30:45Z" {
		t.Errorf("SubmittedAt = %q, want %q", sub.SubmittedAt, "2025-06-15T12:30:45Z")
	}
	if _, parseErr := time.Parse(time.RFC3339, sub.SubmittedAt); parseErr != nil {
		t.Errorf("SubmittedAt should be RFC3339: %v", parseErr)
	}
}

func TestSubmit_TrimsWhitespace(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, &mockRecorder{})

	sub, err := svc.Submit(testIdentity, "  blue  ", "\thello\n")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.FavoriteColor != "blue" {
		t.Errorf("FavoriteColor = %q, want %q", sub.FavoriteColor, "blue")
	}
	if sub.Message != "hello" {
		t.Errorf("Message = %q, want %q", sub.Message, "hello")
	}
}

func TestSubmit_MissingFields_Rejected(t *testing.T) {
	tests := []struct {
		name          string
		favoriteColor string
		message       string
	}{
		{name: "両方とも空", favoriteColor: "", message: ""},
		{name: "favoriteColorが空", favoriteColor: "", message: "hello"},
		{name: "messageが空", favoriteColor: "blue", message: ""},
		{name: "空白のみは空とみなす", favoriteColor: "   ", message: "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			recorder := &mockRecorder{}
			svc := newTestService(store, recorder)

			_, err := svc.Submit(testIdentity, tt.favoriteColor, tt.message)

			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *model.ValidationError, got %v", err)
			}
			if verr.Kind != model.ValidationMissingField {
				t.Errorf("Kind = %q, want %q", verr.Kind, model.ValidationMissingField)
			}
			if len(store.appended) != 0 {
				t.Error("rejected submission should not be appended")
			}
			if len(recorder.rejected) != 1 || recorder.rejected[0] != "missing_field" {
				t.Errorf("rejected = %v, want [missing_field]", recorder.rejected)
			}
		})
	}
}

func TestSubmit_LengthLimits(t *testing.T) {
	tests := []struct {
		name          string
		favoriteColor string
		message       string
		wantErr       bool
		wantField     string
	}{
		{
			name:          "favoriteColorが上限ちょうどは許可",
			favoriteColor: strings.Repeat("a", 50),
			message:       "hello",
			wantErr:       false,
		},
		{
			name:          "favoriteColorが上限超過は拒否",
			favoriteColor: strings.Repeat("a", 51),
			message:       "hello",
			wantErr:       true,
			wantField:     "favoriteColor",
		},
		{
			name:          "messageが上限ちょうどは許可",
			favoriteColor: "blue",
			message:       strings.Repeat("b", 500),
			wantErr:       false,
		},
		{
			name:          "messageが上限超過は拒否",
			favoriteColor: "blue",
			message:       strings.Repeat("b", 501),
			wantErr:       true,
			wantField:     "message",
		},
		{
			name:          "多バイト文字は文字数で判定",
			favoriteColor: strings.Repeat("あ", 50),
			message:       "hello",
			wantErr:       false,
		},
		{
			name:          "多バイト文字の上限超過は拒否",
			favoriteColor: strings.Repeat("あ", 51),
			message:       "hello",
			wantErr:       true,
			wantField:     "favoriteColor",
		},
		{
			name:          "両方超過はfavoriteColorを先に報告",
			favoriteColor: strings.Repeat("a", 51),
			message:       strings.Repeat("b", 501),
			wantErr:       true,
			wantField:     "favoriteColor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			svc := newTestService(store, &mockRecorder{})

			_, err := svc.Submit(testIdentity, tt.favoriteColor, tt.message)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *model.ValidationError, got %v", err)
			}
			if verr.Kind != model.ValidationTooLong {
				t.Errorf("Kind = %q, want %q", verr.Kind, model.ValidationTooLong)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSubmit_SanitizerApplied(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, markingSanitizer{}, &mockRecorder{})

	sub, err := svc.Submit(testIdentity, "blue", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 検証後・保存前にサニタイズされること
	if sub.FavoriteColor != "clean:blue" {
		t.Errorf("FavoriteColor = %q, want %q", sub.FavoriteColor, "clean:blue")
	}
	if sub.Message != "clean:hello" {
		t.Errorf("Message = %q, want %q", sub.Message, "clean:hello")
	}
}

func TestSubmit_UniqueIDs(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, &mockRecorder{})

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		sub, err := svc.Submit(testIdentity, "blue", "hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if seen[sub.ID] {
			t.Fatalf("duplicate submission ID %q", sub.ID)
		}
		seen[sub.ID] = true
	}
}

func TestSubmit_StoreError_Propagated(t *testing.T) {
	store := &mockStore{
		appendFn: func(sub *model.Submission) error {
			return errors.New("disk full")
		},
	}
	recorder := &mockRecorder{}
	svc := newTestService(store, recorder)

	_, err := svc.Submit(testIdentity, "blue", "hello")
	if err == nil {
		t.Fatal("expected error when store fails")
	}
	if recorder.accepted != 0 {
		t.Errorf("accepted = %d, want 0 on store failure", recorder.accepted)
	}
}

func TestLog_DelegatesToStore(t *testing.T) {
	want := &model.SubmissionLog{Submissions: []*model.Submission{{ID: "sub-1"}}}
	store := &mockStore{
		loadFn: func() *model.SubmissionLog { return want },
	}
	svc := newTestService(store, &mockRecorder{})

	got := svc.Log()
	if len(got.Submissions) != 1 || got.Submissions[0].ID != "sub-1" {
		t.Errorf("Log() = %+v, want %+v", got, want)
	}
}

func TestLast_DelegatesToStore(t *testing.T) {
	store := &mockStore{
		lastFn: func() *model.Submission { return &model.Submission{ID: "sub-9"} },
	}
	svc := newTestService(store, &mockRecorder{})

	got := svc.Last()
	if got == nil || got.ID != "sub-9" {
		t.Errorf("Last() = %+v, want ID sub-9", got)
	}
}
