package admin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/auth"
)

func TestHashPassword(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("front-desk\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash-password", "--cost", "4"})

	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
	assert.NoError(t, auth.NewBcryptPasswordHasher(4).Verify("front-desk", hash))
}

func TestHashPassword_Empty(t *testing.T) {
	cmd := NewCommand()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash-password"})

	assert.Error(t, cmd.Execute())
}
