package main

import (
	"context"
	"iter"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gmoji/internal/git"
	"go.abhg.dev/gmoji/internal/moji"
	"go.abhg.dev/komplete"
)

type staticConfigLister map[string]string

func (m staticConfigLister) ListRegexp(context.Context, string) iter.Seq2[git.ConfigEntry, error] {
	return func(yield func(git.ConfigEntry, error) bool) {
		for k, v := range m {
			if !yield(git.ConfigEntry{Key: git.ConfigKey(k), Value: v}, nil) {
				return
			}
		}
	}
}

func TestExpandAliases(t *testing.T) {
	cfg, err := moji.LoadConfig(t.Context(), staticConfigLister{
		"gmoji.alias.wip": "commit --chore --no-verify",
	}, moji.ConfigOptions{})
	require.NoError(t, err)

	tests := []struct {
		name string
		give []string
		want []string
	}{
		{
			name: "NoArgs",
			give: []string{},
			want: []string{},
		},
		{
			name: "NoAlias",
			give: []string{"commit", "-a"},
			want: []string{"commit", "-a"},
		},
		{
			name: "Alias",
			give: []string{"wip", "checkpoint"},
			want: []string{"commit", "--chore", "--no-verify", "checkpoint"},
		},
		{
			name: "AliasOnlyExpandsFirstArg",
			give: []string{"commit", "wip"},
			want: []string{"commit", "wip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			give := slices.Clone(tt.give)
			assert.Equal(t, tt.want, expandAliases(cfg, give))
			assert.Equal(t, tt.give, give, "arguments must not be modified in place")
		})
	}
}

func TestChangeDirFlag(t *testing.T) {
	tests := []struct {
		name string
		give []string
		want string
	}{
		{name: "Empty"},
		{name: "NoFlag", give: []string{"feat", "add querying"}},
		{name: "ShortSeparate", give: []string{"-C", "sub", "wip"}, want: "sub"},
		{name: "ShortJoined", give: []string{"-Csub"}, want: "sub"},
		{name: "LongSeparate", give: []string{"--dir", "sub"}, want: "sub"},
		{name: "LongEquals", give: []string{"--dir=sub"}, want: "sub"},
		{
			name: "RepeatedRelative",
			give: []string{"-C", "a", "-C", "b"},
			want: filepath.Join("a", "b"),
		},
		{
			name: "RepeatedAbsoluteResets",
			give: []string{"-C", "a", "-C", "/abs"},
			want: "/abs",
		},
		{name: "AfterDashDash", give: []string{"--", "-C", "sub"}},
		{name: "MissingValue", give: []string{"-C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, changeDirFlag(tt.give))
		})
	}
}

func TestPredictTypes(t *testing.T) {
	names := predictTypes(komplete.Args{})
	require.Len(t, names, len(moji.All()))
	assert.Contains(t, names, "feat")
	assert.Contains(t, names, "release")
}
