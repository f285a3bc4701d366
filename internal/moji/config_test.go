package moji_test

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gmoji/internal/git"
	"go.abhg.dev/gmoji/internal/moji"
	"go.abhg.dev/gmoji/internal/silog/silogtest"
	"go.abhg.dev/gmoji/internal/text"
)

// stubConfigLister feeds a fixed set of entries to LoadConfig.
type stubConfigLister []git.ConfigEntry

var _ moji.GitConfigLister = (stubConfigLister)(nil)

func (s stubConfigLister) ListRegexp(_ context.Context, _ string) iter.Seq2[git.ConfigEntry, error] {
	return func(yield func(git.ConfigEntry, error) bool) {
		for _, entry := range s {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func TestConfigAliases(t *testing.T) {
	cfg, err := moji.LoadConfig(t.Context(), stubConfigLister{
		{Key: "gmoji.alias.wip", Value: "commit --chore -y"},
		{Key: "gmoji.alias.broken", Value: `commit "unterminated`},
		{Key: "gmoji.tagstyle", Value: "text"},
	}, moji.ConfigOptions{Log: silogtest.New(t)})
	require.NoError(t, err)

	t.Run("expand", func(t *testing.T) {
		args, ok := cfg.ExpandAlias("wip")
		require.True(t, ok)
		assert.Equal(t, []string{"commit", "--chore", "-y"}, args)
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := cfg.ExpandAlias("nope")
		assert.False(t, ok)
	})

	t.Run("invalid value skipped", func(t *testing.T) {
		_, ok := cfg.ExpandAlias("broken")
		assert.False(t, ok)
	})

	t.Run("list", func(t *testing.T) {
		assert.Equal(t, []string{"wip"}, cfg.Aliases())
	})
}

func TestIntegrationConfig_loadFromGit(t *testing.T) {
	// Prevent current user's gitconfig from interfering with the test.
	t.Setenv("HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name   string
		config string
		args   []string
		want   any

		wantErr []string // non-empty if error messages are expected
	}{
		{name: "Empty", want: struct {
			TagStyle     string `config:"tagStyle"`
			MaxDiffLines int    `config:"maxDiffLines"`
			UpdateCheck  bool   `config:"updateCheck"`
		}{}},

		{
			name: "Configured",
			config: text.Dedent(`
				[gmoji]
				tagStyle = text
				maxDiffLines = 500
				updateCheck = true
			`),
			want: struct {
				TagStyle     string `config:"tagStyle"`
				MaxDiffLines int    `config:"maxDiffLines"`
				UpdateCheck  bool   `config:"updateCheck"`
			}{
				TagStyle:     "text",
				MaxDiffLines: 500,
				UpdateCheck:  true,
			},
		},
		{
			name: "Configured/Override",
			args: []string{"--tag-style=emoji"},
			config: text.Dedent(`
				[gmoji]
				tagStyle = text
			`),
			want: struct {
				TagStyle string `config:"tagStyle"`
			}{TagStyle: "emoji"},
		},
		{
			name: "Enum/ConfigInvalid",
			config: text.Dedent(`
				[gmoji]
				tagStyle = wingdings
			`),
			want: struct {
				TagStyle string `config:"tagStyle" enum:"emoji,text" default:"emoji"`
			}{},
			wantErr: []string{`--tag-style must be one of`, `got "wingdings"`},
		},
		{
			name: "Multiple",
			config: text.Dedent(`
				[gmoji]
				exclude = *.lock
				exclude = vendor/*
			`),
			want: struct {
				Exclude []string `config:"exclude"`
			}{Exclude: []string{"*.lock", "vendor/*"}},
		},
		{
			name: "Multiple/LastWins",
			config: text.Dedent(`
				[gmoji]
				maxDiffLines = 100
				maxDiffLines = 200
			`),
			want: struct {
				MaxDiffLines int `config:"maxDiffLines"`
			}{MaxDiffLines: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(
				filepath.Join(home, ".gitconfig"),
				[]byte(tt.config),
				0o600,
			), "write configuration file")

			gitCfg := git.NewConfig(git.ConfigOptions{
				Log: silogtest.New(t),
				Dir: home,
				Env: []string{
					"HOME=" + home,
					"USER=testuser",
					"GIT_CONFIG_NOSYSTEM=1",
				},
			})
			cfg, err := moji.LoadConfig(t.Context(), gitCfg, moji.ConfigOptions{
				Log: silogtest.New(t),
			})
			require.NoError(t, err, "load configuration")

			gotptr := reflect.New(reflect.TypeOf(tt.want)) // *T
			cli, err := kong.New(
				gotptr.Interface(),
				kong.Resolvers(cfg),
			)
			require.NoError(t, err, "create app")

			_, err = cli.Parse(tt.args)
			if len(tt.wantErr) > 0 {
				require.Error(t, err, "parse flags")
				for _, msg := range tt.wantErr {
					assert.ErrorContains(t, err, msg)
				}
				return
			}

			require.NoError(t, err, "parse flags")
			assert.Equal(t, tt.want, gotptr.Elem().Interface())
		})
	}
}
