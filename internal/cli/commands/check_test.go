package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ecltoml/internal/cli/config"
	"github.com/leapstack-labs/ecltoml/internal/cli/output"
	"github.com/leapstack-labs/ecltoml/internal/cli/testutil"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkFixtures(t *testing.T) (good, bad string) {
	t.Helper()
	dir := t.TempDir()
	good = testutil.WriteFile(t, dir, "good.ecl", validSource)
	bad = testutil.WriteFile(t, dir, "bad.ecl", "[s]\nk = @\n[t]\nj =")
	return good, bad
}

func TestCheck_AllPass(t *testing.T) {
	good, _ := checkFixtures(t)

	out, errOut, err := execute(NewCheckCommand(), nil, nil, good, good)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "Passed")
	assert.NotContains(t, out, "Failed")
}

func TestCheck_Failures(t *testing.T) {
	good, bad := checkFixtures(t)

	out, errOut, err := execute(NewCheckCommand(), nil, nil, good, bad)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.ErrorContains(t, err, "1 of 2 file(s) have errors")

	assert.Contains(t, errOut, bad+":2:5: error:")
	assert.Contains(t, errOut, bad+":4:4: error:")
	assert.Contains(t, out, "Passed")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "InvalidChar, EmptyValue")
}

func TestCheck_JSON(t *testing.T) {
	good, bad := checkFixtures(t)
	cfg := config.Default()
	cfg.OutputFormat = "json"

	// Run with more files than workers; results keep argument order.
	cfg.Check.Jobs = 2
	files := []string{bad, good, bad, good, good}

	out, errOut, err := execute(NewCheckCommand(), cfg, nil, files...)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Empty(t, errOut)

	var got []struct {
		File        string `json:"file"`
		OK          bool   `json:"ok"`
		Diagnostics []struct {
			Kind string `json:"kind"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(files))
	for i, res := range got {
		assert.Equal(t, files[i], res.File)
		assert.Equal(t, files[i] == good, res.OK, res.File)
	}
	require.Len(t, got[0].Diagnostics, 2)
	assert.Equal(t, "InvalidChar", got[0].Diagnostics[0].Kind)
	assert.NotNil(t, got[1].Diagnostics, "passing files report an empty list")
	assert.Empty(t, got[1].Diagnostics)
}

func TestCheck_Strict(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "dup.ecl", "[a]\nx = 1\nx = 2\n")

	_, _, err := execute(NewCheckCommand(), nil, nil, path)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Strict = true
	_, errOut, err := execute(NewCheckCommand(), cfg, nil, path)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, errOut, "output is not valid TOML")
}

func TestCheck_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ecl")

	_, _, err := execute(NewCheckCommand(), nil, nil, missing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCheckFailed)
	assert.ErrorContains(t, err, "failed to read")
}

func TestCheckResult_Status(t *testing.T) {
	assert.Equal(t, "passed", checkResult{}.status())
	assert.Equal(t, "failed", checkResult{Diagnostics: diag.List{{Kind: diag.EmptyValue}}}.status())
	assert.Equal(t, "failed", checkResult{Invalid: assert.AnError}.status())
}

func TestKindSummary(t *testing.T) {
	tests := []struct {
		name  string
		kinds []diag.Kind
		want  string
	}{
		{"empty", nil, ""},
		{"single", []diag.Kind{diag.EmptyValue}, "EmptyValue"},
		{"counts in first-seen order", []diag.Kind{
			diag.UndefinedConstant, diag.EmptyValue, diag.UndefinedConstant,
		}, "UndefinedConstant x2, EmptyValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list diag.List
			for _, k := range tt.kinds {
				list.Add(diag.Diagnostic{Kind: k})
			}
			assert.Equal(t, tt.want, kindSummary(list))
		})
	}
}

func TestRenderCheckText_Table(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	renderCheckText(tr.Renderer, false, []checkResult{
		{File: "a.ecl"},
		{File: "b.ecl", Source: "[s]\nk =\n", Diagnostics: diag.List{{Kind: diag.EmptyValue, Message: "missing value after \"=\""}}},
	})

	assert.Contains(t, tr.Output(), "a.ecl")
	assert.Contains(t, tr.Output(), "┌")
	assert.Contains(t, tr.ErrorOutput(), "b.ecl:0:0: error: missing value")
	testutil.AssertNoANSI(t, tr.Output())
}
