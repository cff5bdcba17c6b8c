package card

import (
	"testing"

	"community_cards/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "@abc", NormalizeUsername("abc"))
	assert.Equal(t, "@abc", NormalizeUsername("@abc"))
	assert.Equal(t, "@abc", NormalizeUsername("  @@abc "))
}

func TestNormalizeUsername_Idempotent(t *testing.T) {
	for _, in := range []string{"", "@", "abc", "@abc", "@@abc", " a_b ", "x@y"} {
		once := NormalizeUsername(in)
		assert.Equal(t, once, NormalizeUsername(once), "input=%q", in)
	}
}

func TestValidateHandle(t *testing.T) {
	assert.NoError(t, ValidateHandle("alice"))
	assert.NoError(t, ValidateHandle("@alice_01"))
	assert.ErrorIs(t, ValidateHandle(""), domain.ErrHandleRequired)
	assert.ErrorIs(t, ValidateHandle("   "), domain.ErrHandleRequired)
	assert.ErrorIs(t, ValidateHandle("al ice"), domain.ErrInvalidHandle)
	assert.ErrorIs(t, ValidateHandle("@@alice"), domain.ErrInvalidHandle)
	assert.ErrorIs(t, ValidateHandle("alice!"), domain.ErrInvalidHandle)
}
