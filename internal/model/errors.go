package model

import "fmt"

// ValidationKind は入力検証エラーの種別を表す。
type ValidationKind string

const (
	// ValidationMissingField は必須フィールドが空（または空白のみ）であることを示す。
	ValidationMissingField ValidationKind = "missing_field"
	// ValidationTooLong はフィールドが上限文字数を超えていることを示す。
	ValidationTooLong ValidationKind = "too_long"
)

// ValidationError はフォーム入力の検証エラーを表す。
// HTTP層では400 Bad Requestの平文メッセージとして返される。
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return e.Message
}

// NewMissingFieldError は必須フィールド未入力エラーを生成する。
func NewMissingFieldError() *ValidationError {
	return &ValidationError{
		Kind:    ValidationMissingField,
		Field:   "favoriteColor,message",
		Message: "favoriteColor and message are required.",
	}
}

// NewTooLongError は上限文字数超過エラーを生成する。
func NewTooLongError(field string, max int) *ValidationError {
	return &ValidationError{
		Kind:    ValidationTooLong,
		Field:   field,
		Message: fmt.Sprintf("%s too long (max %d).", field, max),
	}
}
