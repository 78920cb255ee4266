package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/ecltoml/internal/cli/config"
	"github.com/leapstack-labs/ecltoml/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_Table(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "app.ecl", "[server]\nport = 8080\n")

	out, errOut, err := execute(NewTokensCommand(), nil, nil, path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "IDENT")
	assert.Contains(t, out, `"port"`)
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "EOF")
	assert.Contains(t, out, "2:8")
}

func TestTokens_JSON(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "app.ecl", "def X := 1\n")
	cfg := config.Default()
	cfg.OutputFormat = "json"

	out, _, err := execute(NewTokensCommand(), cfg, nil, path)
	require.NoError(t, err)

	var dump struct {
		Tokens []struct {
			Type    string `json:"type"`
			Literal string `json:"literal"`
			Pos     struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"pos"`
		} `json:"tokens"`
		Diagnostics []json.RawMessage `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dump))

	types := make([]string, 0, len(dump.Tokens))
	for _, tok := range dump.Tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []string{"def", "IDENT", ":=", "NUMBER", "EOF"}, types)
	assert.Equal(t, "X", dump.Tokens[1].Literal)
	assert.Equal(t, 10, dump.Tokens[3].Pos.Column)
	assert.NotNil(t, dump.Diagnostics)
	assert.Empty(t, dump.Diagnostics)
}

func TestTokens_LexErrors(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "bad.ecl", "[s]\nk = @\n")

	out, errOut, err := execute(NewTokensCommand(), nil, nil, path)
	require.ErrorIs(t, err, ErrTranslationFailed)
	assert.Contains(t, out, "ILLEGAL", "tokens are printed before errors")
	assert.Contains(t, errOut, path+":2:5: error:")
}
