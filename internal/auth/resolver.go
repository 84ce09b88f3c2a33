package auth

import "github.com/hitoshi/formgate/internal/model"

// displayNameFields は表示名として参照するプロフィールフィールドの優先順リスト。
// Discord API / 経由ライブラリの世代によってフィールド名が異なるため、
// 暗黙のプロパティ探索ではなく明示的なポリシーとして保持する。
var displayNameFields = []string{"global_name", "globalName", "displayName"}

// fallbackUsername はプロフィールにusernameが無い場合に使う表示用の値。
const fallbackUsername = "Unknown"

// ResolveIdentity は生のプロフィールからIdentityを構築する。
// 純粋関数であり、失敗モードを持たない（常に値を返す）。
// usernameが無い場合は"Unknown"、表示名はdisplayNameFieldsの先頭から
// 最初に見つかった非空の値、いずれも無ければ空文字列となる。
func ResolveIdentity(profile model.Profile) model.Identity {
	username := profile.StringField("username")
	if username == "" {
		username = fallbackUsername
	}

	var displayName string
	for _, field := range displayNameFields {
		if v := profile.StringField(field); v != "" {
			displayName = v
			break
		}
	}

	return model.Identity{
		ID:          profile.StringField("id"),
		Username:    username,
		DisplayName: displayName,
	}
}
