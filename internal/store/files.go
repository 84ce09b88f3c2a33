// Package store はJSONファイルによるデータ永続化を提供する。
//
// 読み出しは「ファイル全体を読む」、書き込みは「ファイル全体を書き戻す」の
// 単純なモデルを採用する。想定される書き込み量は人手によるフォーム投稿のみで
// あり、部分更新やトランザクションは必要としない。
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// readJSONFile はpathのJSONをvへ読み込み、成功したかどうかを返す。
// ファイルが存在しない・空・パース不能の場合はfalseを返し、呼び出し側が
// フォールバック値を使う。パース不能なファイルはデータ復旧に備えて
// <path>.corruptへ退避してから空の状態として扱う。
func readJSONFile(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read data file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("data file is not valid JSON, preserving a copy and falling back to empty",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			slog.Warn("failed to preserve corrupt data file",
				slog.String("path", path),
				slog.String("error", renameErr.Error()),
			)
		}
		return false
	}

	return true
}

// writeJSONFile はvをインデント付きJSONとしてpathへ書き込む。
// 一時ファイルへ書いてからリネームするため、読み手に途中状態は見えない。
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// initFile はファイルが存在しない場合のみinitialを書き込む。
// 既存ファイルは内容の有無にかかわらず上書きしない（初期化の冪等性）。
func initFile(path string, initial any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return writeJSONFile(path, initial)
}
