// internal/utils/slug_test.go
package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Shoe Shop", "shoe-shop"},
		{"already a slug", "shoe-shop", "shoe-shop"},
		{"uppercase", "MAMA AFRICA", "mama-africa"},
		{"punctuation stripped", "Jean's Café & Grill!", "jeans-café-grill"},
		{"digits kept", "Shop 24/7", "shop-247"},
		{"collapsed separators", "a  -  b", "a-b"},
		{"leading and trailing noise", "  --Hello--  ", "hello"},
		{"only punctuation", "!!! ***", ""},
		{"empty", "", ""},
		{"tabs and newlines", "one\ttwo\nthree", "one-two-three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Shoe Shop", "Jean's Café", "a  -  b", "Shop 24/7"}
	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestResolveUniqueSlugFirstFree(t *testing.T) {
	slug, err := ResolveUniqueSlug("shoe-shop", func(candidate string) (bool, error) {
		return false, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "shoe-shop", slug)
}

func TestResolveUniqueSlugProbesCounters(t *testing.T) {
	taken := map[string]bool{
		"shoe-shop":   true,
		"shoe-shop-1": true,
	}

	slug, err := ResolveUniqueSlug("shoe-shop", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "shoe-shop-2", slug)
}

func TestResolveUniqueSlugPropagatesError(t *testing.T) {
	probeErr := errors.New("connection lost")

	_, err := ResolveUniqueSlug("shoe-shop", func(candidate string) (bool, error) {
		return false, probeErr
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}
