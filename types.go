package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"go.abhg.dev/gmoji/internal/moji"
	"go.abhg.dev/gmoji/internal/text"
	"go.abhg.dev/gmoji/internal/ui"
)

type typesCmd struct{}

func (*typesCmd) Help() string {
	return text.Dedent(`
		Lists the commit types that gmoji knows about,
		along with their emoji, aliases, and a short description.
		Any of the listed names or aliases
		may be used with the --type flag of 'gmoji commit'.

		Command aliases configured with 'git config gmoji.alias.<name>'
		are listed at the end.
	`)
}

func (*typesCmd) Run(app *kong.Kong, cfg *moji.Config) error {
	nameStyle := ui.NewStyle().Foreground(ui.Yellow)
	aliasStyle := ui.NewStyle().Foreground(ui.Gray)

	var width int
	for _, t := range moji.All() {
		width = max(width, len(t.Name))
	}

	for _, t := range moji.All() {
		fmt.Fprintf(app.Stdout, "%s  %s  %s",
			t.Emoji,
			nameStyle.Render(fmt.Sprintf("%-*s", width, t.Name)),
			t.Description,
		)
		if len(t.Aliases) > 0 {
			fmt.Fprintf(app.Stdout, " %s",
				aliasStyle.Render("(also: "+strings.Join(t.Aliases, ", ")+")"))
		}
		fmt.Fprintln(app.Stdout)
	}

	if aliases := cfg.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(app.Stdout, "\nAliases:\n")
		for _, alias := range aliases {
			long, _ := cfg.ExpandAlias(alias)
			fmt.Fprintf(app.Stdout, "  %s  %s\n",
				nameStyle.Render(alias),
				aliasStyle.Render(strings.Join(long, " ")))
		}
	}
	return nil
}
