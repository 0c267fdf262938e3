package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudio(t *testing.T) {
	t.Run("必須の依存関係が無い場合はエラー", func(t *testing.T) {
		_, err := NewStudio(nil, &mockImageModel{}, newMockStore(), testModels)
		assert.ErrorContains(t, err, "text model client is required")

		_, err = NewStudio(&mockContentModel{}, nil, newMockStore(), testModels)
		assert.ErrorContains(t, err, "image model client is required")

		_, err = NewStudio(&mockContentModel{}, &mockImageModel{}, newMockStore(), Models{Text: "t"})
		assert.ErrorContains(t, err, "model names are required")

		_, err = NewStudio(&mockContentModel{}, &mockImageModel{}, newMockStore(), testModels, WithComposer(nil))
		assert.ErrorContains(t, err, "composer is required")
	})

	t.Run("store が nil なら保存しない", func(t *testing.T) {
		s, err := NewStudio(&mockContentModel{}, &mockImageModel{}, nil, testModels)
		require.NoError(t, err)
		assert.NotNil(t, s.store)
		assert.NotNil(t, s.composer, "default catalog should be used")
	})
}
