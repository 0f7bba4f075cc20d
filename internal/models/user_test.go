package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignableRole(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		expected  UserRole
	}{
		{"user", "USER", UserRoleUser},
		{"editor", "EDITOR", UserRoleEditor},
		{"admin", "ADMIN", UserRoleAdmin},
		{"superadmin is never assignable", "SUPERADMIN", UserRoleUser},
		{"empty", "", UserRoleUser},
		{"garbage", "garbage", UserRoleUser},
		{"lowercase not accepted", "admin", UserRoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AssignableRole(tt.requested))
		})
	}
}

func TestToggleFavourite(t *testing.T) {
	t.Run("removes a present id", func(t *testing.T) {
		updated, added := ToggleFavourite([]string{"a", "b"}, "a")
		assert.False(t, added)
		assert.Equal(t, []string{"b"}, updated)
	})

	t.Run("appends an absent id at the end", func(t *testing.T) {
		updated, added := ToggleFavourite([]string{"b"}, "a")
		assert.True(t, added)
		assert.Equal(t, []string{"b", "a"}, updated)
	})

	t.Run("toggle twice restores membership but not position", func(t *testing.T) {
		once, _ := ToggleFavourite([]string{"a", "b"}, "a")
		twice, _ := ToggleFavourite(once, "a")
		assert.Equal(t, []string{"b", "a"}, twice)
	})

	t.Run("removes duplicates entirely", func(t *testing.T) {
		updated, added := ToggleFavourite([]string{"a", "b", "a"}, "a")
		assert.False(t, added)
		assert.Equal(t, []string{"b"}, updated)
	})

	t.Run("empty set gains the id", func(t *testing.T) {
		updated, added := ToggleFavourite(nil, "a")
		assert.True(t, added)
		assert.Equal(t, []string{"a"}, updated)
	})
}
