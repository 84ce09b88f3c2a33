// Package model はドメインモデルを定義する。
package model

import "time"

// Profile はOAuthプロバイダーから取得した生のプロフィールデータを表す。
// プロバイダーのAPIバージョンや経由するライブラリによってフィールド構成が
// 変わるため、デコード済みのJSONオブジェクトをそのまま保持する。
type Profile map[string]any

// StringField はプロフィールから文字列フィールドを取り出す。
// フィールドが存在しない、または文字列でない場合は空文字列を返す。
func (p Profile) StringField(key string) string {
	v, ok := p[key].(string)
	if !ok {
		return ""
	}
	return v
}

// Identity は認証済みユーザーの安定した識別情報を表す。
// リクエストごとにセッション上のプロフィールから再構築され、永続化はされない。
// 投稿レコードと許可リストからはIDのみが参照される。
type Identity struct {
	ID          string
	Username    string
	DisplayName string
}

// Session は確立済みのログインセッションを表す。
type Session struct {
	ID        string
	Identity  Identity
	ExpiresAt time.Time
	CreatedAt time.Time
}
