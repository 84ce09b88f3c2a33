package store

import (
	"fmt"
	"sync"

	"github.com/hitoshi/formgate/internal/model"
)

// SubmissionStore は投稿ログをJSONファイルで管理する。
// 追記は全件読み出し→メモリ上で追加→全件書き戻しで行う。
// HTTPハンドラーは並行に実行されるため、読み出し-変更-書き戻しの
// 競合で投稿が失われないようミューテックスで直列化する。
type SubmissionStore struct {
	path string
	mu   sync.Mutex
}

// NewSubmissionStore はSubmissionStoreを生成する。
func NewSubmissionStore(path string) *SubmissionStore {
	return &SubmissionStore{path: path}
}

// Init はファイルが存在しない場合に空の投稿ログを作成する。
// 既存の投稿ログは上書きしない。
func (s *SubmissionStore) Init() error {
	return initFile(s.path, &model.SubmissionLog{Submissions: []*model.Submission{}})
}

// Load は投稿ログ全体を返す。ファイルが存在しない・空・パース不能の
// 場合は空のログへフォールバックし、エラーは呼び出し側へ伝播しない。
func (s *SubmissionStore) Load() *model.SubmissionLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Append は投稿をログ末尾へ追記し、ファイル全体を書き戻す。
func (s *SubmissionStore) Append(sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.loadLocked()
	log.Submissions = append(log.Submissions, sub)

	if err := writeJSONFile(s.path, log); err != nil {
		return fmt.Errorf("failed to append submission: %w", err)
	}
	return nil
}

// Last は直近の投稿を返す。投稿が1件も無い場合はnilを返す。
func (s *SubmissionStore) Last() *model.Submission {
	log := s.Load()
	if len(log.Submissions) == 0 {
		return nil
	}
	return log.Submissions[len(log.Submissions)-1]
}

func (s *SubmissionStore) loadLocked() *model.SubmissionLog {
	log := &model.SubmissionLog{}
	if !readJSONFile(s.path, log) {
		return &model.SubmissionLog{Submissions: []*model.Submission{}}
	}
	if log.Submissions == nil {
		log.Submissions = []*model.Submission{}
	}
	return log
}
