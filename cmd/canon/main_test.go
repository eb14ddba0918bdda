package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smasher164/synth/ops"
)

var testDir = os.DirFS("testdata")

// inOut maps each name.in.txt under testdata to its name.out.txt.
func inOut(t *testing.T) map[string]string {
	m := make(map[string]string)
	require.NoError(t, fs.WalkDir(testDir, ".", func(path string, d fs.DirEntry, err error) error {
		parts := strings.Split(path, ".")
		if len(parts) == 3 && parts[1] == "in" {
			m[path] = strings.Join([]string{parts[0], "out.txt"}, ".")
		}
		return err
	}))
	return m
}

// flagsOf reads a leading "; flags: ..." comment.
func flagsOf(src []byte) []string {
	first, _, _ := strings.Cut(string(src), "\n")
	if rest, ok := strings.CutPrefix(first, "; flags:"); ok {
		return strings.Fields(rest)
	}
	return nil
}

func TestGolden(t *testing.T) {
	cases := inOut(t)
	require.NotEmpty(t, cases)
	for in, out := range cases {
		t.Run(in, func(t *testing.T) {
			src, err := fs.ReadFile(testDir, in)
			require.NoError(t, err)
			want, err := fs.ReadFile(testDir, out)
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer
			args := append(flagsOf(src), filepath.Join("testdata", in))
			code := run(args, nil, &stdout, &stderr)
			assert.Equal(t, string(want), stdout.String())
			if strings.Contains(string(want), "line ") {
				assert.Equal(t, 1, code, stderr.String())
			} else {
				assert.Equal(t, 0, code, stderr.String())
			}
		})
	}
}

func TestStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "debug", "-log-format", "text"}, strings.NewReader("(let y 2 y)\n\n"), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "(let a 2 a)\n", stdout.String())
	assert.Contains(t, stderr.String(), "msg=done")
}

func TestOps(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-ops", "-config", filepath.Join("testdata", "arith.yaml")}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var doc struct {
		Operators []ops.CatalogEntry `yaml:"operators"`
	}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	want, err := ops.Catalog(ops.Arith()...)
	require.NoError(t, err)
	assert.Equal(t, want, doc.Operators)
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"a", "b"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: canon")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-bogus"}, nil, &stdout, &stderr))

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-log-level", "loud"}, nil, &stdout, &stderr))

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"testdata/missing.in.txt"}, nil, &stdout, &stderr))
}
