package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/logo.png", true},
		{"http://cdn.example.com/logo.jpg", true},
		{"https://cdn.example.com/path/to/logo.JPEG", true},
		{"https://cdn.example.com/logo.gif", true},
		{"HTTPS://cdn.example.com/logo.svg", true},
		{"https://cdn.example.com/logo.pdf", false},
		{"https://cdn.example.com/logo.png?size=large", false},
		{"ftp://cdn.example.com/logo.png", false},
		{"cdn.example.com/logo.png", false},
		{`https://cdn.example.com/"quoted".png`, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImageURL(tt.url))
		})
	}
}
