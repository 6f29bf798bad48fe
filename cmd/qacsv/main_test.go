package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sample = "ID,Question,Answer,Intent\n1,Hi,Hello,Greeting\nbroken line\n2,Bye,\"See you, soon\",\n"

func TestValidate(t *testing.T) {
	path := writeFile(t, "faq.csv", sample)

	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 1 skipped")
	assert.Contains(t, out, "skipped data line 2")
}

func TestValidate_JSON(t *testing.T) {
	out, err := execute(t, sample, "validate", "--json", "-")
	require.NoError(t, err)

	var res validateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "-", res.File)
	assert.Equal(t, []int{2}, res.SkippedLines)
}

func TestValidate_Strict(t *testing.T) {
	out, err := execute(t, sample, "validate", "--mode", "strict", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 1 skipped")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"missing columns", "Name,Value\na,b\n", []string{"validate", "-"}, "CSV must contain columns"},
		{"no skips", sample, []string{"validate", "--no-skips", "-"}, "1 line(s) skipped"},
		{"bad mode", sample, []string{"validate", "--mode", "loose", "-"}, "unknown decode mode"},
		{"bad charset", sample, []string{"validate", "--charset", "klingon", "-"}, "unsupported charset"},
		{"missing file", "", []string{"validate", filepath.Join(t.TempDir(), "nope.csv")}, "no such file"},
		{"no args", "", []string{"validate"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConvert(t *testing.T) {
	out, err := execute(t, sample, "convert", "--mode", "strict", "--delimiter", "semicolon", "-")
	require.NoError(t, err)

	want := qacsv.BOM +
		"ID;Question;Answer;Intent\r\n" +
		"1;Hi;Hello;Greeting\r\n" +
		"2;Bye;See you, soon;" + qacsv.DefaultIntent
	assert.Equal(t, want, out)
}

func TestConvert_ToFile(t *testing.T) {
	in := writeFile(t, "faq.csv", sample)
	dst := filepath.Join(t.TempDir(), "out.csv")

	out, err := execute(t, "", "convert", "--no-bom", "-o", dst, in)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Question,Answer,Intent\r\n"))

	rows, err := qacsv.Decode(string(data))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestConvert_NoRows(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.csv")

	out, err := execute(t, "ID,Question,Answer,Intent\nbroken line\n", "convert", "-o", dst, "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoData)
	assert.Empty(t, out)
	assert.NoFileExists(t, dst)
}

func TestDescribe(t *testing.T) {
	got := describe(fmt.Errorf("faq.csv: %w", core.ErrNoData))
	assert.Equal(t, "error: faq.csv: "+core.ErrNoData.Error()+"\n"+core.FormatUserError(core.ErrNoData)+"\n", got)
	assert.Contains(t, got, "EXP001")

	assert.Equal(t, "error: accepts 1 arg(s), received 0\n", describe(errors.New("accepts 1 arg(s), received 0")))
}

func TestTemplate(t *testing.T) {
	out, err := execute(t, "", "template", "--delimiter", "tab")
	require.NoError(t, err)
	assert.Equal(t, qacsv.BOM+"ID\tQuestion\tAnswer\tIntent\r\n", out)

	out, err = execute(t, "", "template", "--no-bom")
	require.NoError(t, err)
	assert.Equal(t, "ID,Question,Answer,Intent\r\n", out)

	_, err = execute(t, "", "template", "--delimiter", "|")
	require.Error(t, err)
}
