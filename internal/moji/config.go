package moji

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/buildkite/shellwords"
	"go.abhg.dev/gmoji/internal/git"
	"go.abhg.dev/gmoji/internal/silog"
)

const (
	_section  = "gmoji"
	_aliasKey = "alias"
	_flagTag  = "config"
)

// GitConfigLister provides access to git-config output.
type GitConfigLister interface {
	ListRegexp(context.Context, string) iter.Seq2[git.ConfigEntry, error]
}

var _ GitConfigLister = (*git.Config)(nil)

// Config holds gmoji settings read from git-config,
// at any of the system, user, repository, or worktree levels.
//
// It doubles as a [kong.Resolver]:
// a flag tagged `config:"tagStyle"` gets its default
// from the "gmoji.tagStyle" key if one is set.
// Explicit command line arguments take precedence,
// and untagged flags never read configuration.
//
// When a key repeats, single-valued flags use the last value
// and slice flags collect every value.
type Config struct {
	values  map[git.ConfigKey][]string
	aliases map[string][]string
}

// ConfigOptions specifies options for the [Config].
type ConfigOptions struct {
	// Log specifies the logger to use for logging.
	// Defaults to no logging.
	Log *silog.Logger
}

// LoadConfig reads every key in the "gmoji." namespace
// from the provided [GitConfigLister].
//
// Keys under "gmoji.alias.*" define command aliases;
// aliases whose values cannot be split into shell words
// are skipped with a warning.
func LoadConfig(ctx context.Context, lister GitConfigLister, opts ConfigOptions) (*Config, error) {
	log := opts.Log
	if log == nil {
		log = silog.Nop()
	}

	cfg := &Config{
		values:  make(map[git.ConfigKey][]string),
		aliases: make(map[string][]string),
	}
	for entry, err := range lister.ListRegexp(ctx, `^`+_section+`\.`) {
		if err != nil {
			return nil, fmt.Errorf("list configuration: %w", err)
		}
		cfg.add(log, entry)
	}
	return cfg, nil
}

func (c *Config) add(log *silog.Logger, entry git.ConfigEntry) {
	key := entry.Key.Canonical()
	section, subsection, name := key.Split()
	switch {
	case section != _section:
		// git config --get-regexp should never report keys
		// outside the namespace we asked for,
		// but skip them if it does.

	case subsection == _aliasKey:
		long, err := shellwords.SplitPosix(entry.Value)
		if err != nil {
			log.Warn("Skipping alias with invalid value",
				"alias", name,
				"value", entry.Value,
				"error", err,
			)
			return
		}
		c.aliases[name] = long

	default:
		c.values[key] = append(c.values[key], entry.Value)
	}
}

// ExpandAlias returns the long form of a configured alias.
// Returns false if the alias is not defined.
func (c *Config) ExpandAlias(name string) ([]string, bool) {
	args, ok := c.aliases[name]
	return args, ok
}

// Aliases returns the names of all defined aliases in sorted order.
func (c *Config) Aliases() []string {
	return slices.Sorted(maps.Keys(c.aliases))
}

// Validate checks if the configuration is valid for the given application.
// This is a no-op, as we allow unknown configuration keys.
func (*Config) Validate(*kong.Application) error { return nil }

// Resolve resolves the value for a flag from configuration.
func (c *Config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	name := flag.Tag.Get(_flagTag)
	if name == "" {
		return nil, nil
	}

	key := git.ConfigKey(_section + "." + name).Canonical()
	values := c.values[key]
	if len(values) == 0 {
		return nil, nil
	}

	if flag.IsSlice() && len(values) > 1 {
		if flag.Tag.Sep == -1 {
			return nil, fmt.Errorf("key %q has multiple values but no separator is defined", key)
		}
		// Kong splits the joined value back apart with the separator.
		return kong.JoinEscaped(values, flag.Tag.Sep), nil
	}

	// Last value wins for single-valued flags.
	return values[len(values)-1], nil
}
