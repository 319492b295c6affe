package credential_test

import (
	"strings"
	"testing"

	"go-hrms/internal/credential"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLoginID(t *testing.T) {
	tests := []struct {
		name                 string
		company, first, last string
		year, serial         int
		expected             string
	}{
		{"basic", "Acme Inc", "Jo", "Do", 2024, 7, "ACJODO20240007"},
		{"strips non letters", "3M Corp", "o'Neil", "van-Dyke", 2023, 12, "MCONVA20230012"},
		{"short segment", "Acme", "J", "Doe", 2024, 1, "ACJDO20240001"},
		{"lower case", "globex", "hank", "scorpio", 2021, 9999, "GLHASC20219999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := credential.GenerateLoginID(tt.company, tt.first, tt.last, tt.year, tt.serial)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLoginID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := credential.GenerateLoginID("Acme Inc", "Jo", "Do", 2024, 7)

		parsed, err := credential.ParseLoginID(id)

		assert.NoError(t, err)
		assert.Equal(t, "AC", parsed.CompanyCode)
		assert.Equal(t, "JO", parsed.FirstNameCode)
		assert.Equal(t, "DO", parsed.LastNameCode)
		assert.Equal(t, 2024, parsed.JoiningYear)
		assert.Equal(t, 7, parsed.Serial)
		assert.Equal(t, id, parsed.String())
	})

	t.Run("rejects non canonical ids", func(t *testing.T) {
		for _, s := range []string{"ACJDO20240001", "acjodo20240007", "ACJODO2024007", "ACJODO20240007X", ""} {
			assert.False(t, credential.IsValidLoginID(s), s)
			_, err := credential.ParseLoginID(s)
			assert.ErrorIs(t, err, credential.ErrInvalidLoginID)
		}
	})
}

func TestCheckLoginIDParts(t *testing.T) {
	tests := []struct {
		name                 string
		company, first, last string
		year, serial         int
		expected             error
	}{
		{"valid", "Acme Inc", "Jo", "Do", 2024, 7, nil},
		{"last serial", "Acme Inc", "Jo", "Do", 2024, credential.MaxSerial, nil},
		{"company without two letters", "3M", "Jo", "Do", 2024, 7, credential.ErrCompanyNameTooShort},
		{"short first name", "Acme", "J", "Doe", 2024, 7, credential.ErrPersonNameTooShort},
		{"short last name", "Acme", "Jo", "O'", 2024, 7, credential.ErrPersonNameTooShort},
		{"five digit year", "Acme", "Jo", "Do", 10000, 7, credential.ErrYearOutOfRange},
		{"serial overflow", "Acme", "Jo", "Do", 2024, credential.MaxSerial + 1, credential.ErrSerialOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credential.CheckLoginIDParts(tt.company, tt.first, tt.last, tt.year, tt.serial)
			if tt.expected == nil {
				assert.NoError(t, err)
				assert.True(t, credential.IsValidLoginID(credential.GenerateLoginID(tt.company, tt.first, tt.last, tt.year, tt.serial)))
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Run("composition", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			pw, err := credential.GeneratePassword(12)

			assert.NoError(t, err)
			assert.Len(t, pw, 12)
			assert.True(t, strings.ContainsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
			assert.True(t, strings.ContainsAny(pw, "abcdefghijklmnopqrstuvwxyz"))
			assert.True(t, strings.ContainsAny(pw, "0123456789"))
			assert.True(t, strings.ContainsAny(pw, "!@#$%^&*"))
		}
	})

	t.Run("default length", func(t *testing.T) {
		pw, err := credential.GeneratePassword(0)

		assert.NoError(t, err)
		assert.Len(t, pw, credential.DefaultPasswordLength)
	})

	t.Run("minimum length", func(t *testing.T) {
		pw, err := credential.GeneratePassword(2)

		assert.NoError(t, err)
		assert.Len(t, pw, 4)
	})
}
