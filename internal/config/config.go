// Package config loads the monitor's capacity settings from an optional
// config.yaml, with environment variable overrides winning over the file —
// the same "flags > viper (config file + env vars) > defaults" precedence
// `cmd/bd/main.go` builds on top of, via a `*viper.Viper` scoped to this one
// call instead of the teacher's process-wide singleton (this program has no
// long-lived config.Initialize/config.Get* surface for subcommands to share).
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Default initial capacities, carried over from the original C source's
// compile-time constants (INITIAL_MON_ENT_SIZE, INITIAL_MON_REL_SIZE, and
// the per-relation/per-destination inner table size).
const (
	DefaultEntityCapacity   = 1 << 21 // 2097152
	DefaultRelationCapacity = 512
	DefaultInnerCapacity    = 256
)

// config.yaml keys.
const (
	keyEntityCapacity   = "entity-capacity"
	keyRelationCapacity = "relation-capacity"
	keyInnerCapacity    = "inner-capacity"
)

// Environment variable names that override config.yaml / defaults.
const (
	envEntityCap   = "RELMON_ENTITY_CAP"
	envRelationCap = "RELMON_RELATION_CAP"
	envInnerCap    = "RELMON_INNER_CAP"
)

// Config holds the three capacity knobs spec §6 allows exposing as flags.
// None of them affect core semantics, only how soon the hash tables they
// size first need to grow.
type Config struct {
	EntityCapacity   int
	RelationCapacity int
	InnerCapacity    int
}

// Default returns the compile-time default capacities.
func Default() Config {
	return Config{
		EntityCapacity:   DefaultEntityCapacity,
		RelationCapacity: DefaultRelationCapacity,
		InnerCapacity:    DefaultInnerCapacity,
	}
}

// Load resolves a Config from path's YAML contents with environment
// overrides on top, via viper — an empty path, or a path that does not
// exist, yields the defaults (plus any environment overrides) rather than
// an error, since config.yaml is optional. Binding each key to its own env
// var (rather than viper.AutomaticEnv's prefix-derived names) keeps the
// RELMON_*_CAP names spec §6 documents.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault(keyEntityCapacity, DefaultEntityCapacity)
	v.SetDefault(keyRelationCapacity, DefaultRelationCapacity)
	v.SetDefault(keyInnerCapacity, DefaultInnerCapacity)

	_ = v.BindEnv(keyEntityCapacity, envEntityCap)
	_ = v.BindEnv(keyRelationCapacity, envRelationCap)
	_ = v.BindEnv(keyInnerCapacity, envInnerCap)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	return Config{
		EntityCapacity:   v.GetInt(keyEntityCapacity),
		RelationCapacity: v.GetInt(keyRelationCapacity),
		InnerCapacity:    v.GetInt(keyInnerCapacity),
	}, nil
}
