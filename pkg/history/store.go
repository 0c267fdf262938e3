// Package history はセッションごとの生成・編集結果を追加順に保持します。
package history

import "sync"

// Store は追加順に要素を保持するスレッドセーフな履歴です。
// 要素の削除は Clear による全消去のみです。
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
}

// New は空の Store を返します。
func New[T any]() *Store[T] {
	return &Store[T]{}
}

// Append は要素を末尾に追加します。
func (s *Store[T]) Append(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// ListRecent は新しい順に最大 n 件を返します。n <= 0 の場合はすべて返します。
func (s *Store[T]) ListRecent(n int) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.items)
	if n <= 0 || n > total {
		n = total
	}
	out := make([]T, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, s.items[i])
	}
	return out
}

// Find は新しい順に走査し、match を満たす最初の要素を返します。
func (s *Store[T]) Find(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.items) - 1; i >= 0; i-- {
		if match(s.items[i]) {
			return s.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Len は保持している件数を返します。
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear はすべての要素を削除します。
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
