// backend/pipeline/coerce_test.go
package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntCell(t *testing.T) {
	t.Run("plain integer", func(t *testing.T) {
		n, err := parseIntCell("24")
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, 24, *n)
	})

	t.Run("float-stored integer", func(t *testing.T) {
		n, err := parseIntCell("24.0")
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, 24, *n)
	})

	t.Run("empty means absent", func(t *testing.T) {
		n, err := parseIntCell("")
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("genuine fraction is an error", func(t *testing.T) {
		_, err := parseIntCell("24.5")
		assert.Error(t, err)
	})

	t.Run("text is an error", func(t *testing.T) {
		_, err := parseIntCell("dos")
		assert.Error(t, err)
	})
}

func TestParseDecimalCell(t *testing.T) {
	t.Run("integer amount", func(t *testing.T) {
		d, err := parseDecimalCell("600000")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.True(t, d.Equal(*dec(t, "600000")))
	})

	t.Run("cents survive", func(t *testing.T) {
		d, err := parseDecimalCell("1234.56")
		require.NoError(t, err)
		assert.True(t, d.Equal(*dec(t, "1234.56")))
	})

	t.Run("decimal comma is accepted", func(t *testing.T) {
		d, err := parseDecimalCell("1234,56")
		require.NoError(t, err)
		assert.True(t, d.Equal(*dec(t, "1234.56")))
	})

	t.Run("empty means absent", func(t *testing.T) {
		d, err := parseDecimalCell("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("text is an error", func(t *testing.T) {
		_, err := parseDecimalCell("n/a")
		assert.Error(t, err)
	})

	t.Run("multiple commas are an error", func(t *testing.T) {
		_, err := parseDecimalCell("1,234,56")
		assert.Error(t, err)
	})
}

func TestParseDateCell(t *testing.T) {
	jan1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	may1 := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	t.Run("excel serial", func(t *testing.T) {
		f, err := parseDateCell("45292")
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.True(t, f.Time.Equal(jan1), "got %s", f)
	})

	t.Run("serial with time-of-day fraction", func(t *testing.T) {
		f, err := parseDateCell("45292.75")
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.True(t, f.Time.Equal(jan1), "got %s", f)
	})

	t.Run("iso text", func(t *testing.T) {
		f, err := parseDateCell("2024-05-01")
		require.NoError(t, err)
		assert.True(t, f.Time.Equal(may1), "got %s", f)
	})

	t.Run("iso datetime text", func(t *testing.T) {
		f, err := parseDateCell("2024-05-01 00:00:00")
		require.NoError(t, err)
		assert.True(t, f.Time.Equal(may1), "got %s", f)
	})

	t.Run("day-first text", func(t *testing.T) {
		for _, in := range []string{"01/05/2024", "1/5/2024", "01-05-2024"} {
			f, err := parseDateCell(in)
			require.NoError(t, err, "input %q", in)
			assert.True(t, f.Time.Equal(may1), "input %q got %s", in, f)
		}
	})

	t.Run("empty means absent", func(t *testing.T) {
		f, err := parseDateCell("")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("zero serial is an error", func(t *testing.T) {
		_, err := parseDateCell("0")
		assert.Error(t, err)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := parseDateCell("mañana")
		assert.Error(t, err)
	})
}

func TestCellString(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", cellString(row, 0))
	assert.Equal(t, "b", cellString(row, 1))
	assert.Equal(t, "", cellString(row, 2), "past the ragged end")
	assert.Equal(t, "", cellString(row, -1))
}
