package cloudinary_test

import (
	"hotel/infras/cloudinary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"versioned url", "https://res.cloudinary.com/demo/image/upload/v1700000000/rooms/deluxe.jpg", "rooms/deluxe"},
		{"unversioned url", "https://res.cloudinary.com/demo/image/upload/rooms/suite.png", "rooms/suite"},
		{"no extension", "https://res.cloudinary.com/demo/image/upload/v1/rooms/twin", "rooms/twin"},
		{"not cloudinary", "https://cdn.example.com/rooms/a.png", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cloudinary.PublicIDFromURL(tt.url))
		})
	}
}
