package store

import (
	"github.com/hitoshi/formgate/internal/model"
)

// AllowlistStore は許可Discord IDの集合をJSONファイルで管理する。
// ファイルは運用者が帯域外で編集するため、毎回の照合でホットリードする。
// キャッシュやリロードシグナルは持たない。
type AllowlistStore struct {
	path string
}

// NewAllowlistStore はAllowlistStoreを生成する。
func NewAllowlistStore(path string) *AllowlistStore {
	return &AllowlistStore{path: path}
}

// Init はファイルが存在しない場合に空の許可リストを作成する。
// 既存の許可リストは上書きしない。
func (s *AllowlistStore) Init() error {
	return initFile(s.path, &model.Allowlist{AllowedIDs: []string{}})
}

// Contains はidが現在の許可リストに含まれるかを返す。
// 読み込み失敗は空集合へフォールバックするため、常にfalse側に倒れる。
func (s *AllowlistStore) Contains(id string) bool {
	if id == "" {
		return false
	}
	for _, allowed := range s.load().AllowedIDs {
		if allowed == id {
			return true
		}
	}
	return false
}

// IDs は現在許可されている全IDを返す。
func (s *AllowlistStore) IDs() []string {
	return s.load().AllowedIDs
}

// load は許可リストを読み込む。ファイルが存在しない・空・パース不能の
// 場合は空の許可リストへフォールバックする。
func (s *AllowlistStore) load() *model.Allowlist {
	list := &model.Allowlist{}
	if !readJSONFile(s.path, list) {
		return &model.Allowlist{AllowedIDs: []string{}}
	}
	if list.AllowedIDs == nil {
		list.AllowedIDs = []string{}
	}
	return list
}
