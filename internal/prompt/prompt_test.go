package prompt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-ksctl/internal/prompt"
)

func TestLine_Prompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("sqlite:ks.db\r\nadmin\n  secret  "), &out)

	dsn, err := p.Prompt("Enter database DSN:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite:ks.db", dsn)

	user, err := p.Prompt("Enter database user:")
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	password, err := p.Prompt("Enter database password:")
	require.NoError(t, err)
	assert.Equal(t, "  secret  ", password)

	assert.Equal(t, "Enter database DSN: Enter database user: Enter database password: ", out.String())

	_, err = p.Prompt("again:")
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLine_EmptyLine(t *testing.T) {
	t.Parallel()

	p := prompt.New(strings.NewReader("\n"), nil)
	answer, err := p.Prompt("Enter database user:")
	require.NoError(t, err)
	assert.Empty(t, answer)
}
