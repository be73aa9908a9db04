package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/rle/internal/art"
	"github.com/Neumenon/rle/rle"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func dragonImage() string {
	return strings.Join(art.Dragon, "\n") + "\n"
}

func TestShow_DefaultOutput(t *testing.T) {
	out, _, err := runCLI(t, "")
	require.NoError(t, err)

	lines := strings.SplitN(out, "\n", 3)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `[" 72", "@1", "%4", " 23", "n", " 69", "%6"`), lines[0][:40])
	assert.True(t, strings.HasSuffix(lines[0], `"%7", "@1", " 8", "n"]`))
	assert.Equal(t, "362", lines[1])
	assert.Equal(t, dragonImage(), lines[2])
}

func TestShow_ExplicitCommandMatchesDefault(t *testing.T) {
	def, _, err := runCLI(t, "")
	require.NoError(t, err)
	explicit, _, err := runCLI(t, "", "show")
	require.NoError(t, err)
	assert.Equal(t, def, explicit)
}

func TestShow_Delimited(t *testing.T) {
	out, _, err := runCLI(t, "", "--delimited")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `[" :72", "@:1", "%:4"`), out[:40])
	assert.True(t, strings.HasSuffix(out, dragonImage()))
}

func TestShow_VerboseLogsToStderr(t *testing.T) {
	out, logs, err := runCLI(t, "", "-v")
	require.NoError(t, err)
	assert.Contains(t, logs, "Encoded image")
	assert.Contains(t, logs, "tokens=362")
	assert.NotContains(t, out, "Encoded image")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	input := "  %%%@\n\n@@ %\n"

	listing, _, err := runCLI(t, input, "encode")
	require.NoError(t, err)
	assert.Equal(t, "[\" 2\", \"%3\", \"@1\", \"n\", \"@2\", \" 1\", \"%1\", \"n\"]\n8\n", listing)

	out, _, err := runCLI(t, listing, "decode")
	require.NoError(t, err)
	assert.Equal(t, "  %%%@\n@@ %\n", out)
}

func TestEncode_PreserveEmptyLines(t *testing.T) {
	input := "ab\n\ncd\n"

	listing, _, err := runCLI(t, input, "encode", "--empty-lines=preserve")
	require.NoError(t, err)

	out, _, err := runCLI(t, listing, "decode")
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestEncode_WarnsOnCollapsedEmptyLines(t *testing.T) {
	_, logs, err := runCLI(t, "a\n\nb\n", "encode")
	require.NoError(t, err)
	assert.Contains(t, logs, "Empty lines will not survive decoding")
}

func TestEncode_YAML(t *testing.T) {
	out, _, err := runCLI(t, "", "encode", "--builtin", "--format=yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "- "), out[:20])

	decoded, _, err := runCLI(t, out, "decode")
	require.NoError(t, err)
	assert.Equal(t, dragonImage(), decoded)
}

func TestEncode_Framed(t *testing.T) {
	out, _, err := runCLI(t, "", "encode", "--builtin", "--framed")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "@rle{v=1 fmt=concat lines=38 tokens=362 "), out[:60])

	decoded, _, err := runCLI(t, out, "decode")
	require.NoError(t, err)
	assert.Equal(t, dragonImage(), decoded)
}

func TestEncode_DigitsNeedDelimited(t *testing.T) {
	_, _, err := runCLI(t, "a55\n", "encode")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Cause(err), rle.ErrAmbiguousRun), "got %v", err)

	listing, _, err := runCLI(t, "a55\n", "encode", "--delimited")
	require.NoError(t, err)
	assert.Equal(t, "[\"a:1\", \"5:2\", \"n\"]\n3\n", listing)

	out, _, err := runCLI(t, listing, "decode", "--delimited")
	require.NoError(t, err)
	assert.Equal(t, "a55\n", out)
}

func TestEncode_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.txt")
	require.NoError(t, os.WriteFile(path, []byte("xxxy\r\nz\r\n"), 0o644))

	out, _, err := runCLI(t, "", "encode", path)
	require.NoError(t, err)
	assert.Equal(t, "[\"x3\", \"y1\", \"n\", \"z1\", \"n\"]\n5\n", out)
}

func TestEncode_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "encode", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")
}

func TestDecode_Malformed(t *testing.T) {
	_, _, err := runCLI(t, `["a3", "7", "n"]`, "decode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode tokens")
	assert.True(t, errors.Is(errors.Cause(err), rle.ErrMalformedToken), "got %v", err)
}

func TestDecode_CountMismatch(t *testing.T) {
	_, _, err := runCLI(t, "[\"a3\", \"n\"]\n5\n", "decode")
	require.Error(t, err)
	var cme *rle.CountMismatchError
	assert.True(t, errors.As(err, &cme), "got %v", err)
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dragon "+libVersion+"\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := runCLI(t, "", "--log-level=loud", "version")
	assert.Error(t, err)
}
