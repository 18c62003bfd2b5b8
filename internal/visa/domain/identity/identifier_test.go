package identity

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visacheck/internal/visa/domain/shared"
)

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomString(r *rand.Rand, alphabet string, n int) string {
	var b strings.Builder
	for range n {
		b.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return b.String()
}

// TestValidate_NationalID covers the 12-digit rule at the trust boundary.
func TestValidate_NationalID(t *testing.T) {
	t.Run("accepts the documented example", func(t *testing.T) {
		require.NoError(t, Validate(NationalID("281234567890")))
	})

	t.Run("rejects eleven digits", func(t *testing.T) {
		assert.ErrorIs(t, Validate(NationalID("28123456789")), ErrInvalidNationalID)
	})

	t.Run("rejects a valid value that also carries a country of issue", func(t *testing.T) {
		in := Input{Kind: KindNationalID, Value: "281234567890", CountryOfIssue: "India"}
		assert.ErrorIs(t, Validate(in), ErrInvalidNationalID)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"thirteen digits", "2812345678901"},
		{"letter inside", "28123456789A"},
		{"leading space", " 28123456789"},
		{"trailing newline", "28123456789\n"},
		{"arabic-indic digits", "٢٨١٢٣٤٥٦٧٨٩٠"},
		{"fullwidth digits", "２８１２３４５６７８９０"},
		{"dash separated", "281-234-5678"},
		{"null byte", "28123456789\x00"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(NationalID(tt.input)), ErrInvalidNationalID)
		})
	}

	t.Run("accepts every generated 12-digit string", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		for range 500 {
			v := randomString(r, "0123456789", 12)
			require.NoError(t, Validate(NationalID(v)), "value %q", v)
		}
	})

	t.Run("rejects every generated digit string of another length", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 4))
		for n := 0; n <= 24; n++ {
			if n == 12 {
				continue
			}
			v := randomString(r, "0123456789", n)
			assert.ErrorIs(t, Validate(NationalID(v)), ErrInvalidNationalID, "value %q", v)
		}
	})
}

// TestValidate_TravelDocument covers document shape and country of issue.
func TestValidate_TravelDocument(t *testing.T) {
	t.Run("accepts mixed case alphanumerics with a country", func(t *testing.T) {
		require.NoError(t, Validate(TravelDocument("Ab12cd", "India")))
		require.NoError(t, Validate(TravelDocument("P1234567ZZ99", shared.CountryOther)))
	})

	t.Run("accepts every generated 6-12 character value", func(t *testing.T) {
		r := rand.New(rand.NewPCG(5, 6))
		countries := shared.AcceptedCountries()
		for range 500 {
			v := randomString(r, alphanumerics, 6+r.IntN(7))
			c := countries[r.IntN(len(countries))]
			require.NoError(t, Validate(TravelDocument(v, c)), "value %q country %q", v, c)
		}
	})

	t.Run("missing country always fails regardless of value validity", func(t *testing.T) {
		r := rand.New(rand.NewPCG(7, 8))
		for range 200 {
			v := randomString(r, alphanumerics, 6+r.IntN(7))
			assert.ErrorIs(t, Validate(TravelDocument(v, "")), ErrMissingCountryOfIssue, "value %q", v)
		}
	})

	t.Run("country outside the accepted list is treated as missing", func(t *testing.T) {
		assert.ErrorIs(t, Validate(TravelDocument("A1234567", "Atlantis")), ErrMissingCountryOfIssue)
	})

	t.Run("structure is checked before the country", func(t *testing.T) {
		assert.ErrorIs(t, Validate(TravelDocument("A12", "")), ErrInvalidTravelDocument)
		assert.NotErrorIs(t, Validate(TravelDocument("A12", "")), ErrMissingCountryOfIssue)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"five characters", "A1234"},
		{"thirteen characters", "A123456789012"},
		{"hyphen", "AB-12345"},
		{"space", "AB 12345"},
		{"accented letter", "ÀB12345"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(TravelDocument(tt.input, "India")), ErrInvalidTravelDocument)
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	err := Validate(Input{Kind: "driving_licence", Value: "281234567890"})
	assert.ErrorIs(t, err, ErrUnknownIdentifierKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("PASSPORT")
	require.NoError(t, err)
	assert.Equal(t, KindTravelDocument, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindNationalID, k)

	_, err = ParseKind("visa")
	assert.ErrorIs(t, err, ErrUnknownIdentifierKind)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "invalid_national_id", Reason(ErrInvalidNationalID))
	assert.Equal(t, "invalid_travel_document", Reason(ErrInvalidTravelDocument))
	assert.Equal(t, "missing_country_of_issue", Reason(ErrMissingCountryOfIssue))
	assert.Equal(t, "unknown_identifier_kind", Reason(ErrUnknownIdentifierKind))
	assert.Empty(t, Reason(assert.AnError))
	assert.Empty(t, Reason(nil))
}

func TestEcho(t *testing.T) {
	assert.Equal(t, "281234567890", NationalID("281234567890").Echo(false))
	assert.Equal(t, "XXXXXXXX7890", NationalID("281234567890").Echo(true))
	assert.Equal(t, "2XXXXXXXXXXX", TravelDocument("A1234567", "Nepal").Echo(false))
	assert.Equal(t, "2XXXXXXXXXXX", TravelDocument("A1234567", "Nepal").Echo(true))
}

func TestNationality(t *testing.T) {
	assert.Equal(t, "Nepal", TravelDocument("A1234567", "Nepal").Nationality())
	assert.Equal(t, "India", NationalID("281234567890").Nationality())
}
