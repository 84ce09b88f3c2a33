package model

// Submission はフォームから受け付けた1件の投稿レコードを表す。
// 追記された後は不変であり、このシステムが更新・削除することはない。
// SubmittedAtはISO-8601（RFC 3339）のUTC文字列として保持する。
type Submission struct {
	ID                string `json:"id"`
	SubmittedAt       string `json:"submitted_at"`
	DiscordID         string `json:"discord_id"`
	DiscordUsername   string `json:"discord_username"`
	DiscordGlobalName string `json:"discord_global_name"`
	FavoriteColor     string `json:"favorite_color"`
	Message           string `json:"message"`
}

// SubmissionLog は投稿レコードの追記専用シーケンスを表す永続化フォーマット。
// 並び順は挿入順であり、そのまま時系列順となる。
type SubmissionLog struct {
	Submissions []*Submission `json:"submissions"`
}

// Allowlist は利用を許可されたDiscord IDの集合を表す永続化フォーマット。
// 運用者が帯域外でファイルを編集することのみで変更される。
type Allowlist struct {
	AllowedIDs []string `json:"allowed_ids"`
}
