package reservation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateSecretCode()
		require.NoError(t, err)

		s := code.String()
		require.Len(t, s, 11)
		assert.True(t, secretCodePattern.MatchString(s), s)
		for _, r := range strings.ReplaceAll(s, "-", "") {
			assert.True(t, strings.ContainsRune(SecretCodeAlphabet, r), "symbol %q outside alphabet", r)
		}
		seen[s] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

func TestNormalizeSecretCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lower case", "a1b-2c3-d4e", "A1B-2C3-D4E"},
		{"surrounding whitespace", "  A1B-2C3-D4E\n", "A1B-2C3-D4E"},
		{"inner whitespace", "a1b - 2c3 - d4e", "A1B-2C3-D4E"},
		{"full width", "ａ１ｂ－２ｃ３－ｄ４ｅ", "A1B-2C3-D4E"},
		{"ideographic space", "A1B-2C3-D4E　", "A1B-2C3-D4E"},
		{"dashes preserved when absent", "a1b2c3d4e", "A1B2C3D4E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSecretCode(tt.input))
		})
	}
}

func TestParseSecretCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical", "A1B-2C3-D4E", "A1B-2C3-D4E", false},
		{"lower case with spaces", " a1b-2c3-d4e ", "A1B-2C3-D4E", false},
		{"missing dashes", "a1b2c3d4e", "", true},
		{"too short", "A1B-2C3", "", true},
		{"symbols", "A1B-2C3-D4!", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseSecretCode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSecretCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}

func TestSecretCodeMatches(t *testing.T) {
	stored := ReconstructSecretCode("A1B-2C3-D4E")

	supplied, err := ParseSecretCode("a1b-2c3-d4e")
	require.NoError(t, err)
	assert.True(t, stored.Matches(supplied))

	other, err := ParseSecretCode("A1B-2C3-D4F")
	require.NoError(t, err)
	assert.False(t, stored.Matches(other))

	assert.False(t, stored.Matches(SecretCode{}))
	assert.False(t, SecretCode{}.Matches(SecretCode{}))
}

// FuzzNormalizeSecretCode checks normalisation is idempotent and never
// leaves whitespace or lower-case ASCII behind.
func FuzzNormalizeSecretCode(f *testing.F) {
	for _, seed := range []string{"a1b-2c3-d4e", " A1B 2C3 D4E ", "ａ１ｂ－２ｃ３", "", "\t\n", "中文-テスト"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		once := NormalizeSecretCode(input)
		if twice := NormalizeSecretCode(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
		for _, r := range once {
			if r == ' ' || r == '\t' || r == '\n' || (r >= 'a' && r <= 'z') {
				t.Fatalf("unexpected rune %q in %q", r, once)
			}
		}
		if _, err := ParseSecretCode(input); err == nil && !secretCodePattern.MatchString(once) {
			t.Fatalf("parse accepted %q but normalised form %q does not match", input, once)
		}
	})
}
