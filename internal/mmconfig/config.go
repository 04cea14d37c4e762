// Package mmconfig loads toolbox-wide settings from TOML, grounded on the
// teacher's server.Config (FillDefaults/Validate pair over a plain struct)
// and on internal/tqw's use of github.com/BurntSushi/toml for on-disk data.
package mmconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/mmtoolbox/internal/registry"
)

// MissingMatchPolicy mirrors registry.ErrorPolicy for TOML (un)marshaling;
// registry.ErrorPolicy itself is an unexported-friendly int enum with no
// string form, so config files spell the policy out by name.
type MissingMatchPolicy string

const (
	MissingMatchHardError MissingMatchPolicy = "hard-error"
	MissingMatchNoOp MissingMatchPolicy = "no-op"
)

// ToRegistryPolicy converts p to the registry.ErrorPolicy it names.
func (p MissingMatchPolicy) ToRegistryPolicy() (registry.ErrorPolicy, error) {
	switch p {
	case "", MissingMatchHardError:
		return registry.HardError, nil
	case MissingMatchNoOp:
		return registry.NoOpProver, nil
	default:
		return 0, fmt.Errorf("mmconfig: unknown missing_match_policy %q", string(p))
	}
}

// Config is the toolbox-wide settings loaded from a TOML file.
type Config struct {
	// CachePath is the path to the persistent LR(1) parser-table cache
	// sqlite database. If empty, the toolbox runs without a persistent
	// cache and recomputes the table on every induced grammar.
	CachePath string `toml:"cache_path"`

	// UpToHypsPerms is the default for unify_assertion's up_to_hyps_perms
	// parameter when a caller does not override it.
	UpToHypsPerms bool `toml:"up_to_hyps_perms"`

	// MissingMatchPolicy governs what registry.Cache.Resolve does when a
	// registered prover's templates match no assertion in the bound
	// library.
	MissingMatchPolicy MissingMatchPolicy `toml:"missing_match_policy"`
}

// Default returns the Config used when no file is loaded.
func Default() Config {
	return Config{
		UpToHypsPerms: true,
		MissingMatchPolicy: MissingMatchHardError,
	}
}

// FillDefaults returns a copy of cfg with an empty MissingMatchPolicy
// replaced by Default's. UpToHypsPerms is kept as given, so a false value
// stays false.
func (cfg Config) FillDefaults() Config {
	def := Default()
	filled := cfg
	if filled.MissingMatchPolicy == "" {
		filled.MissingMatchPolicy = def.MissingMatchPolicy
	}
	return filled
}

// Validate returns an error if cfg has a field set to a value that cannot
// be acted on.
func (cfg Config) Validate() error {
	if _, err := cfg.MissingMatchPolicy.ToRegistryPolicy(); err != nil {
		return err
	}
	return nil
}

// Load reads and parses the TOML file at path. The returned Config has not
// had FillDefaults applied; callers that want defaults filled in call it
// themselves, mirroring the prior toolbox's split between parsing and defaulting.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mmconfig: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("mmconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
