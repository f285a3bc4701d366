package git

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gmoji/internal/silog/silogtest"
)

func TestConfigKeySplit(t *testing.T) {
	tests := []struct {
		give ConfigKey

		section, subsection, name string
	}{
		{give: "foo", name: "foo"},
		{give: "foo.bar", section: "foo", name: "bar"},
		{give: "foo.bar.baz", section: "foo", subsection: "bar", name: "baz"},
		{
			give:       "foo.bar.baz.qux",
			section:    "foo",
			subsection: "bar.baz",
			name:       "qux",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.give), func(t *testing.T) {
			section, subsection, name := tt.give.Split()
			assert.Equal(t, tt.section, section, "section")
			assert.Equal(t, tt.subsection, subsection, "subsection")
			assert.Equal(t, tt.name, name, "name")

			assert.Equal(t, tt.section, tt.give.Section())
			assert.Equal(t, tt.subsection, tt.give.Subsection())
			assert.Equal(t, tt.name, tt.give.Name())
		})
	}
}

func TestConfigKeyCanonical(t *testing.T) {
	tests := []struct {
		give, want ConfigKey
	}{
		{give: "foo", want: "foo"},
		{give: "FOO.Bar", want: "foo.bar"},
		{give: "foo.BAR.baz", want: "foo.BAR.baz"},
		{give: "GMOJI.alias.Wip", want: "gmoji.alias.wip"},
	}

	for _, tt := range tests {
		t.Run(string(tt.give), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.give.Canonical())
		})
	}
}

func TestConfigListRegexp(t *testing.T) {
	pair := func(key, value string) string {
		return key + "\n" + value
	}

	lines := func(lines ...string) string {
		var buf bytes.Buffer
		for _, line := range lines {
			buf.WriteString(line)
			buf.WriteByte(0)
		}
		return buf.String()
	}

	tests := []struct {
		name string
		give string
		want []ConfigEntry
	}{
		{name: "Empty"},

		{
			name: "Single",
			give: "gmoji.tagStyle\ntext",
			want: []ConfigEntry{{Key: "gmoji.tagStyle", Value: "text"}},
		},
		{
			name: "Multiple",
			give: lines(
				pair("gmoji.exclude", "*.lock"),
				pair("gmoji.exclude", "vendor/*"),
			),
			want: []ConfigEntry{
				{Key: "gmoji.exclude", Value: "*.lock"},
				{Key: "gmoji.exclude", Value: "vendor/*"},
			},
		},
		{
			name: "EmptyEntries",
			give: lines(
				pair("gmoji.updatecheck", "false"),
				"",
				pair("gmoji.maxdifflines", "500"),
			),
			want: []ConfigEntry{
				{Key: "gmoji.updatecheck", Value: "false"},
				{Key: "gmoji.maxdifflines", Value: "500"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			execer := &fakeExecer{
				start: startWithStdout(tt.give),
				wait:  func(*exec.Cmd) error { return nil },
			}

			cfg := NewConfig(ConfigOptions{
				Dir:  t.TempDir(),
				Log:  silogtest.New(t),
				exec: execer,
			})

			var got []ConfigEntry
			for entry, err := range cfg.ListRegexp(t.Context(), `^gmoji\.`) {
				require.NoError(t, err)
				got = append(got, entry)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}
