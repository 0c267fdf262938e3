package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore はローカルディレクトリ配下に保存します。
type LocalStore struct {
	root string
}

// NewLocalStore は root 配下に generated/ と edited/ を作成して LocalStore を返します。
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	for _, dir := range []string{GeneratedDir, EditedDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	return &LocalStore{root: root}, nil
}

// Save は root/key にファイルを書き込み、そのパスを返します。
func (s *LocalStore) Save(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}

	slog.DebugContext(ctx, "アーティファクトを保存しました", "path", path, "bytes", len(data))
	return path, nil
}

// resolve は root の外を指すキーを拒否します。
func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("不正な保存キーです: %s", key)
	}
	return filepath.Join(s.root, clean), nil
}
