package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArithmetic(t *testing.T) {
	t.Run("days until counts calendar days", func(t *testing.T) {
		from := MustDate("2024-01-01")
		assert.Equal(t, 14, from.DaysUntil(MustDate("2024-01-15")))
		assert.Equal(t, -1, from.DaysUntil(MustDate("2023-12-31")))
		assert.Equal(t, 0, from.DaysUntil(from))
		assert.Equal(t, 366, from.DaysUntil(MustDate("2025-01-01")), "2024 is a leap year")
	})

	t.Run("add days crosses month and year boundaries", func(t *testing.T) {
		assert.Equal(t, "2024-03-01", MustDate("2024-02-28").AddDays(2).String())
		assert.Equal(t, "2023-12-02", MustDate("2024-01-01").AddDays(-30).String())
	})

	t.Run("add years rolls 29 February forward", func(t *testing.T) {
		assert.Equal(t, "2022-03-01", MustDate("2024-02-29").AddYears(-2).String())
		assert.Equal(t, "2020-02-29", MustDate("2022-02-28").AddDays(1).AddYears(-2).AddDays(-1).String())
	})

	t.Run("date of ignores the clock and keeps the local calendar day", func(t *testing.T) {
		kuwait := time.FixedZone("AST", 3*60*60)
		late := time.Date(2024, time.January, 1, 23, 30, 0, 0, kuwait)
		assert.Equal(t, "2024-01-01", DateOf(late).String())
		assert.Equal(t, "2023-12-31", DateOf(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)).String())
	})
}

func TestDateParsing(t *testing.T) {
	d, err := ParseDate(" 2024-01-15 ")
	require.NoError(t, err)
	assert.Equal(t, "15/01/2024", d.Display())

	for _, input := range []string{"", "2024-1-15", "15/01/2024", "2024-02-30", "tomorrow"} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"work", CategoryWork},
		{"Visit", CategoryVisit},
		{" residence ", CategoryResidence},
		{"TRANSIT", CategoryTransit},
		{"family", CategoryFamily},
		{"", CategoryWork},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseCategory("tourist")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryLabels(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid())
		assert.NotEqual(t, "Work Visa", c.Label(), "every supported category has its own label")
	}
	assert.Equal(t, "Work Visa", Category("tourist").Label())
}

func TestCountries(t *testing.T) {
	countries := AcceptedCountries()
	require.NotEmpty(t, countries)
	assert.Equal(t, CountryOther, countries[len(countries)-1], "the list ends with the catch-all")

	c, ok := ParseCountry("sri lanka")
	require.True(t, ok)
	assert.Equal(t, Country("Sri Lanka"), c)

	_, ok = ParseCountry("Atlantis")
	assert.False(t, ok)
	_, ok = ParseCountry("   ")
	assert.False(t, ok)

	assert.True(t, Country("India").IsAccepted())
	assert.False(t, Country("india").IsAccepted())
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Valid", StatusValid.Text())
	assert.Equal(t, "Expiring Soon", StatusExpiringSoon.Text())
	assert.Equal(t, "Expired", StatusExpired.Text())
	assert.Equal(t, "Unknown", Status("").Text())
}
