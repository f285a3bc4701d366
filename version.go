package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type versionCmd struct{}

func (cmd *versionCmd) Run(app *kong.Kong) error {
	fmt.Fprintln(app.Stdout, "gmoji", _version)
	fmt.Fprintln(app.Stdout, "Copyright (C) 2026 Abhinav Gupta")
	fmt.Fprintln(app.Stdout, "  <https://github.com/abhinav/gmoji>")
	fmt.Fprintln(app.Stdout, "This program comes with ABSOLUTELY NO WARRANTY")
	fmt.Fprintln(app.Stdout, "This is free software, and you are welcome to redistribute it")
	fmt.Fprintln(app.Stdout, "under certain conditions; see source for details.")
	app.Exit(0)
	return nil
}

type versionFlag bool

func (v versionFlag) BeforeReset(app *kong.Kong) error {
	return (*versionCmd)(nil).Run(app)
}
