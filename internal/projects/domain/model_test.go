package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_With(t *testing.T) {
	base := Project{ID: 7, Name: "Alpha", Description: "first", Budget: 100, ImageURL: "/a.png", IsActive: true}

	t.Run("applies only non-nil fields", func(t *testing.T) {
		out := base.With(Patch{Name: Ptr("Beta"), Budget: Ptr(250.5)})

		assert.Equal(t, int64(7), out.ID)
		assert.Equal(t, "Beta", out.Name)
		assert.Equal(t, "first", out.Description)
		assert.Equal(t, 250.5, out.Budget)
		assert.Equal(t, "/a.png", out.ImageURL)
		assert.True(t, out.IsActive)
	})

	t.Run("does not mutate the base", func(t *testing.T) {
		_ = base.With(Patch{Description: Ptr("changed"), IsActive: Ptr(false)})

		assert.Equal(t, "first", base.Description)
		assert.True(t, base.IsActive)
	})

	t.Run("empty patch yields an equal copy", func(t *testing.T) {
		assert.Equal(t, base, base.With(Patch{}))
	})
}

func TestProject_IsNew(t *testing.T) {
	assert.True(t, Project{}.IsNew())
	assert.False(t, Project{ID: 1}.IsNew())
}
