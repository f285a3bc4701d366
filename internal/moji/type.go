// Package moji defines the fixed taxonomy of commit types
// and the formatting of commit messages against it.
package moji

import "strings"

// TagStyle specifies how a commit type is rendered
// in front of a commit message.
type TagStyle string

const (
	// TagEmoji prefixes the message with the type's emoji:
	//
	//	✨ add the thing
	TagEmoji TagStyle = "emoji"

	// TagText prefixes the message with the type's name in brackets,
	// for terminals and tooling that don't render emoji well:
	//
	//	[feat] add the thing
	TagText TagStyle = "text"
)

// Type is a single commit type in the taxonomy.
type Type struct {
	// Name is the canonical short name of the type.
	Name string

	// Emoji rendered in front of commit messages of this type.
	Emoji string

	// Aliases are alternative names accepted for this type.
	Aliases []string

	// Description is a one-line description of when to use the type.
	Description string
}

// Tag returns the commit message prefix for the type in the given style,
// not including the trailing space.
func (t Type) Tag(style TagStyle) string {
	if style == TagText {
		return "[" + t.Name + "]"
	}
	return t.Emoji
}

// FormatMessage prefixes msg with the type's tag in the given style.
func (t Type) FormatMessage(msg string, style TagStyle) string {
	return t.Tag(style) + " " + msg
}

// _types is the full taxonomy in display order.
// The list is immutable; treat it as read-only.
var _types = []Type{
	{
		Name:        "feat",
		Emoji:       "✨",
		Aliases:     []string{"feature"},
		Description: "A new feature",
	},
	{
		Name:        "fix",
		Emoji:       "🐛",
		Aliases:     []string{"bugfix", "bug"},
		Description: "A bug fix",
	},
	{
		Name:        "docs",
		Emoji:       "📝",
		Aliases:     []string{"doc"},
		Description: "Documentation-only changes",
	},
	{
		Name:        "style",
		Emoji:       "🎨",
		Description: "Formatting changes that don't affect behavior",
	},
	{
		Name:        "refactor",
		Emoji:       "♻️",
		Description: "A change that neither fixes a bug nor adds a feature",
	},
	{
		Name:        "perf",
		Emoji:       "⚡️",
		Aliases:     []string{"performance"},
		Description: "A performance improvement",
	},
	{
		Name:        "test",
		Emoji:       "✅",
		Aliases:     []string{"tests"},
		Description: "Adding or correcting tests",
	},
	{
		Name:        "build",
		Emoji:       "📦",
		Aliases:     []string{"deps"},
		Description: "Changes to the build system or dependencies",
	},
	{
		Name:        "chore",
		Emoji:       "🔧",
		Description: "Maintenance work with no production code change",
	},
	{
		Name:        "release",
		Emoji:       "🔖",
		Aliases:     []string{"version"},
		Description: "A release or version tag",
	},
}

// All returns the taxonomy in display order.
// The returned slice must not be modified.
func All() []Type {
	return _types
}

// Lookup resolves a type name or alias, case-insensitively.
func Lookup(name string) (Type, bool) {
	name = strings.ToLower(name)
	for _, t := range _types {
		if t.Name == name {
			return t, true
		}
		for _, alias := range t.Aliases {
			if alias == name {
				return t, true
			}
		}
	}
	return Type{}, false
}

// Detect reports whether msg already bears a recognized type prefix:
// the type's emoji, a "name: " conventional prefix, or a "[name] " tag,
// using any of the type's names or aliases.
//
// Messages with a recognized prefix are committed as-is
// so that the tag is never duplicated.
func Detect(msg string) (Type, bool) {
	for _, t := range _types {
		if strings.HasPrefix(msg, t.Emoji+" ") || msg == t.Emoji {
			return t, true
		}

		for _, name := range append([]string{t.Name}, t.Aliases...) {
			rest, ok := cutPrefixFold(msg, name)
			if !ok {
				rest, ok = cutPrefixFold(msg, "["+name+"]")
				if ok && (rest == "" || rest[0] == ' ') {
					return t, true
				}
				continue
			}
			if strings.HasPrefix(rest, ": ") || rest == ":" {
				return t, true
			}
		}
	}
	return Type{}, false
}

// cutPrefixFold is strings.CutPrefix with ASCII case-insensitive matching.
func cutPrefixFold(s, prefix string) (rest string, ok bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
