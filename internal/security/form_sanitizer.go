// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FormSanitizer はフォームから受け付けたフィールドを永続化前にサニタイズし、
// 投稿ログの閲覧面（トップページの直近投稿表示、JSONダンプの再利用先）を
// 格納型XSSから保護する。bluemondayのStrictPolicyにより
// タグ・属性を一切許可しない。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// FormSanitizer は投稿フィールドからHTMLマークアップを除去する。
type FormSanitizer struct {
	policy *bluemonday.Policy
}

// NewFormSanitizer はFormSanitizerを生成する。
func NewFormSanitizer() *FormSanitizer {
	return &FormSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize はマークアップを除去した平文を返す。
// bluemondayは残ったテキストをHTMLエンティティ化するため、平文として
// 格納できるようアンエスケープして戻す（"a & b"は"a & b"のまま保たれる）。
// 同一入力に対して常に同一出力を返す（冪等）。
func (s *FormSanitizer) Sanitize(input string) string {
	return html.UnescapeString(s.policy.Sanitize(input))
}
