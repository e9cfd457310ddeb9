package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvlmdr/go-crossval/kfold"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFolds(t *testing.T) {
	out, err := run(t, "folds", "--samples", "4", "--folds", "2")
	require.NoError(t, err)
	assert.Equal(t, "[2 3] [0 1]\n[0 1] [2 3]\n", out)
}

func TestFolds_invalid(t *testing.T) {
	_, err := run(t, "folds", "-n", "3", "-k", "5")
	assert.True(t, errors.Is(err, kfold.ErrInvalidArgument), "%v", err)
}

func TestScore(t *testing.T) {
	out, err := run(t, "score", "--folds", "5", "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "fold 0: "), lines[0])
	assert.True(t, strings.HasPrefix(lines[5], "Accuracy: "), lines[5])
}

func TestHoldout(t *testing.T) {
	out, err := run(t, "holdout", "--test-size", "0.4", "--seed", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "train 90, test 60\n")
	assert.Contains(t, out, "Accuracy: ")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(data, []byte("0,0\n1,0\n2,0\n10,1\n11,1\n12,1\n"), 0o644))
	cfg := filepath.Join(dir, "crossval.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("data: "+data+"\nfolds: 3\nstratified: true\n"), 0o644))

	out, err := run(t, "score", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "fold 2: ")
	assert.Contains(t, out, "Accuracy: 1.00 (+/- 0.00)")
}

func TestEnv(t *testing.T) {
	t.Setenv("CROSSVAL_LOG_LEVEL", "loud")
	_, err := run(t, "folds")
	assert.Error(t, err)
}
