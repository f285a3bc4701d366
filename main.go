// gmoji is a command line tool to create emoji-prefixed Git commits.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.abhg.dev/gmoji/internal/git"
	"go.abhg.dev/gmoji/internal/moji"
	"go.abhg.dev/gmoji/internal/silog"
	"go.abhg.dev/gmoji/internal/ui"
	"go.abhg.dev/komplete"
)

// _version is the version of gmoji.
// This is set at build time with -ldflags.
var _version = "dev"

func main() {
	logger := silog.New(os.Stderr, &silog.Options{
		Level: silog.LevelInfo,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		select {
		case <-sigc:
			logger.Info("Cleaning up. Press Ctrl-C again to exit immediately.")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Configuration comes from git-config, so it is available
	// even before we know whether we're inside a repository.
	//
	// The -C flag is only applied when the CLI is parsed,
	// but parsing needs the configuration for alias expansion,
	// so extract the flag by hand and load from that directory.
	cfg, err := moji.LoadConfig(ctx, git.NewConfig(git.ConfigOptions{
		Dir: changeDirFlag(os.Args[1:]),
		Log: logger,
	}), moji.ConfigOptions{Log: logger})
	if err != nil {
		logger.Fatalf("gmoji: load configuration: %v", err)
	}

	isTerminal := isatty.IsTerminal(os.Stdin.Fd())

	var cmd mainCmd
	parser, err := kong.New(&cmd,
		kong.Name("gmoji"),
		kong.Description("gmoji creates Git commits with emoji-tagged messages."),
		kong.Bind(logger, cfg, &cmd.globalOptions),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Resolvers(cfg),
		kong.Vars{
			// Default to non-interactive mode
			// if we're not in a terminal.
			"nonInteractive": strconv.FormatBool(!isTerminal),
		},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		panic(err)
	}

	komplete.Run(parser,
		komplete.WithTransformCompleted(func(args []string) []string {
			return expandAliases(cfg, args)
		}),
		komplete.WithPredictor("types", komplete.PredictFunc(predictTypes)),
	)

	kctx, err := parser.Parse(expandAliases(cfg, os.Args[1:]))
	if err != nil {
		logger.Fatalf("gmoji: %v", err)
	}

	if err := kctx.Run(); err != nil {
		logger.Fatalf("gmoji: %v", err)
	}
}

// changeDirFlag extracts the value of the -C/--dir flag from arguments
// without a full CLI parse. Like git -C, repeated relative paths
// are interpreted relative to the preceding one.
func changeDirFlag(args []string) string {
	var dir string
	chdir := func(d string) {
		if d == "" {
			return
		}
		if dir == "" || filepath.IsAbs(d) {
			dir = d
		} else {
			dir = filepath.Join(dir, d)
		}
	}

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--":
			return dir
		case arg == "-C" || arg == "--dir":
			if i+1 < len(args) {
				i++
				chdir(args[i])
			}
		case strings.HasPrefix(arg, "-C"):
			chdir(arg[len("-C"):])
		case strings.HasPrefix(arg, "--dir="):
			chdir(arg[len("--dir="):])
		}
	}
	return dir
}

// expandAliases replaces the leading argument with its long form
// if it matches an alias defined in git-config ("gmoji.alias.*").
func expandAliases(cfg *moji.Config, args []string) []string {
	if len(args) == 0 {
		return args
	}

	long, ok := cfg.ExpandAlias(args[0])
	if !ok {
		return args
	}
	return slices.Replace(slices.Clone(args), 0, 1, long...)
}

// predictTypes completes --type flag values with known commit type names.
func predictTypes(komplete.Args) []string {
	types := moji.All()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}

type globalOptions struct {
	NonInteractive bool `name:"non-interactive" short:"I" default:"${nonInteractive}" help:"Disable interactive prompts"`
}

type mainCmd struct {
	globalOptions

	// Flags with side effects whose values are never accessed directly.
	Verbose bool               `short:"v" help:"Enable verbose output" env:"GMOJI_VERBOSE"`
	Dir     kong.ChangeDirFlag `short:"C" placeholder:"DIR" help:"Change to DIR before doing anything"`
	Version versionFlag        `help:"Print version information and quit"`

	Commit     commitCmd     `cmd:"" default:"withargs" help:"Create a commit with a typed message"`
	Types      typesCmd      `cmd:"" help:"List the known commit types"`
	Completion completionCmd `cmd:"" help:"Generate shell completion scripts"`
}

func (cmd *mainCmd) AfterApply(kctx *kong.Context, logger *silog.Logger) error {
	if cmd.Verbose {
		logger.SetLevel(silog.LevelDebug)
	}

	var view ui.View
	if cmd.NonInteractive {
		view = &ui.FileView{W: os.Stderr}
	} else {
		view = &ui.TerminalView{R: os.Stdin, W: os.Stderr}
	}
	kctx.BindTo(view, (*ui.View)(nil))

	return kctx.BindToProvider(func(ctx context.Context) (*git.Repository, error) {
		return git.Open(ctx, ".", git.OpenOptions{Log: logger})
	})
}
