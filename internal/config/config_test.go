package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(cfg))
}

func TestLoad_RejectsOutOfRangeElevation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := "processing:\n  mode: 6\n  nf: 2\n  navsys: 1\n  elmin: 99.0\n  ionoopt: 4\n  tropopt: 2\n  noiter: 1\n  thresslip: 0.05\n  maxinno: 30.0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_GoodFileValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good.yaml")
	body := "processing:\n  mode: 6\n  nf: 2\n  navsys: 1\n  elmin: 0.17\n  ionoopt: 4\n  tropopt: 2\n  noiter: 1\n  thresslip: 0.05\n  maxinno: 30.0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Processing.Nf)
}
