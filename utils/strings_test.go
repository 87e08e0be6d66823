// backend/utils/strings_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Run("trims and collapses interior runs", func(t *testing.T) {
		assert.Equal(t, "Instituto de Física", NormalizeWhitespace("  Instituto   de \t Física  "))
	})

	t.Run("newlines collapse like spaces", func(t *testing.T) {
		assert.Equal(t, "línea uno línea dos", NormalizeWhitespace("línea uno\n\nlínea dos"))
	})

	t.Run("clean input passes through", func(t *testing.T) {
		assert.Equal(t, "ya limpio", NormalizeWhitespace("ya limpio"))
	})

	t.Run("empty and blank stay empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeWhitespace(""))
		assert.Equal(t, "", NormalizeWhitespace("   \t\n"))
	})
}

func TestCleanCode(t *testing.T) {
	t.Run("leading zeros survive", func(t *testing.T) {
		assert.Equal(t, "030102", CleanCode("030102"))
	})

	t.Run("float artifact suffix is stripped", func(t *testing.T) {
		assert.Equal(t, "30102", CleanCode("30102.0"))
		assert.Equal(t, "030102", CleanCode("030102.00"))
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		assert.Equal(t, "030102", CleanCode(" 030102 "))
	})

	t.Run("non-artifact values are untouched", func(t *testing.T) {
		assert.Equal(t, "HEU-2021-101", CleanCode("HEU-2021-101"))
		assert.Equal(t, "30102.5", CleanCode("30102.5"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", CleanCode(""))
	})
}
