package mmconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mmtool.toml")
	contents := `
cache_path = "/var/lib/mmtool/cache.db"
up_to_hyps_perms = false
missing_match_policy = "no-op"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/mmtool/cache.db", cfg.CachePath)
	assert.False(t, cfg.UpToHypsPerms)
	assert.Equal(t, MissingMatchNoOp, cfg.MissingMatchPolicy)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestFillDefaults_LeavesExplicitValuesAlone(t *testing.T) {
	cfg := Config{MissingMatchPolicy: MissingMatchNoOp}
	filled := cfg.FillDefaults()
	assert.Equal(t, MissingMatchNoOp, filled.MissingMatchPolicy)
}

func TestFillDefaults_FillsUnsetPolicy(t *testing.T) {
	filled := Config{}.FillDefaults()
	assert.Equal(t, MissingMatchHardError, filled.MissingMatchPolicy)
}

func TestValidate_RejectsUnknownPolicy(t *testing.T) {
	cfg := Config{MissingMatchPolicy: "bogus"}
	assert.Error(t, cfg.Validate())
}

func TestMissingMatchPolicy_ToRegistryPolicy(t *testing.T) {
	hard, err := MissingMatchHardError.ToRegistryPolicy()
	require.NoError(t, err)
	assert.Equal(t, registry.HardError, hard)

	noop, err := MissingMatchNoOp.ToRegistryPolicy()
	require.NoError(t, err)
	assert.Equal(t, registry.NoOpProver, noop)

	empty, err := MissingMatchPolicy("").ToRegistryPolicy()
	require.NoError(t, err)
	assert.Equal(t, registry.HardError, empty)
}
