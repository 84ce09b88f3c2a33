package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/formgate/internal/middleware"
	"github.com/hitoshi/formgate/internal/model"
)

// FormServiceInterface はフォームハンドラーが必要とするサービスインターフェース。
type FormServiceInterface interface {
	Submit(identity model.Identity, favoriteColor, message string) (*model.Submission, error)
	Log() *model.SubmissionLog
	Last() *model.Submission
}

// FormHandler はフォームの表示・投稿・閲覧のHTTPハンドラー。
type FormHandler struct {
	service     FormServiceInterface
	redirectURL string // 投稿成功後のリダイレクト先
}

// NewFormHandler はFormHandlerを生成する。
func NewFormHandler(service FormServiceInterface, redirectURL string) *FormHandler {
	return &FormHandler{
		service:     service,
		redirectURL: redirectURL,
	}
}

// Index はフォームページを表示する。直近の投稿があれば併せて表示する。
// GET /
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	data := indexPageData{
		User: indexPageUser{
			ID:         identity.ID,
			Username:   identity.Username,
			GlobalName: identity.DisplayName,
		},
		RedirectURL: h.redirectURL,
	}
	if last := h.service.Last(); last != nil {
		data.LastSubmission = &indexPageSubmission{
			SubmittedAt:   last.SubmittedAt,
			FavoriteColor: last.FavoriteColor,
			Message:       last.Message,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("failed to render index page", slog.String("error", err.Error()))
	}
}

// Submit はフォーム投稿を受け付ける。
// 検証エラーは400のプレーンテキストで理由を返し、
// 成功時は設定されたリダイレクト先へ302を返す。
// POST /submit
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	_, err = h.service.Submit(identity, r.PostFormValue("favoriteColor"), r.PostFormValue("message"))
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		slog.Error("failed to record submission", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.redirectURL, http.StatusFound)
}

// Submissions は投稿ログ全体をJSONで返す。
// GET /submissions
func (h *FormHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.service.Log()); err != nil {
		slog.Error("failed to encode submissions", slog.String("error", err.Error()))
	}
}
