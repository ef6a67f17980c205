package model_test

import (
	"hotel/internal/domains/user/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		account  *model.User
		supplied string
		expected string
	}{
		{
			name:     "stored first name wins",
			account:  &model.User{ID: "u-1", FirstName: "Ada"},
			supplied: "Guest",
			expected: "Ada",
		},
		{
			name:     "no account falls back",
			account:  nil,
			supplied: "Guest",
			expected: "Guest",
		},
		{
			name:     "unresolved account falls back",
			account:  &model.User{},
			supplied: "Guest",
			expected: "Guest",
		},
		{
			name:     "blank stored name falls back",
			account:  &model.User{ID: "u-1", FirstName: "   "},
			supplied: "Guest",
			expected: "Guest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.ResolveDisplayName(tt.account, tt.supplied))
		})
	}
}
