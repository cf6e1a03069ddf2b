package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calvinalkan/deliverables/internal/config"

	flag "github.com/spf13/pflag"
)

const helpFlag = "--help"

// Run is the main entry point. Returns exit code.
//
// args includes the program name. sigCh may be nil; otherwise the first signal
// received cancels the running command's context.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(stdin, out, errOut, args, env, sigCh, time.Now)
}

func run(
	stdin io.Reader,
	out, errOut io.Writer,
	args []string,
	env map[string]string,
	sigCh <-chan os.Signal,
	now func() time.Time,
) int {
	app := &App{Now: now, Stdin: stdin}
	commands := allCommands(app)
	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) == 0 {
		printUsage(out, globals.fs, commands)

		return 0
	}

	err := globals.parse(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals.fs, commands)

		return 1
	}

	if globals.help {
		printUsage(out, globals.fs, commands)

		return 0
	}

	rest := globals.fs.Args()
	if len(rest) == 0 {
		fprintln(errOut, "error:", errNoCommand)
		fprintln(errOut)
		printUsage(errOut, globals.fs, commands)

		return 1
	}

	cmd := findCommand(commands, rest[0])
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, rest[0]))
		fprintln(errOut)
		printUsage(errOut, globals.fs, commands)

		return 1
	}

	o := NewIO(out, errOut)

	// Help must work even when the config is broken.
	if hasHelpFlag(rest[1:]) {
		cmd.PrintHelp(o)

		return o.Finish()
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  globals.workDir,
		ConfigPath:       globals.configPath,
		DataDirOverride:  globals.dataDir,
		ProgressOverride: globals.progress,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	app.Cfg = cfg

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	exitCode := cmd.Run(ctx, o, rest[1:])
	warnCode := o.Finish()

	if exitCode != 0 {
		return exitCode
	}

	return warnCode
}

func allCommands(app *App) []*Command {
	return []*Command{
		AddCmd(app),
		EditCmd(app),
		DoneCmd(app),
		RmCmd(app),
		LsCmd(app),
		ShowCmd(app),
		ExportCmd(app),
		ImportCmd(app),
		WatchCmd(app),
		PrintConfigCmd(app),
	}
}

func findCommand(commands []*Command, name string) *Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

type globalFlags struct {
	fs *flag.FlagSet

	workDir    string
	configPath string
	dataDir    string
	progress   string
	help       bool
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{fs: flag.NewFlagSet("deliverables", flag.ContinueOnError)}

	g.fs.SetOutput(io.Discard)
	g.fs.SetInterspersed(false)
	g.fs.StringVarP(&g.workDir, "cwd", "C", "", "Run as if started in `dir`")
	g.fs.StringVarP(&g.configPath, "config", "c", "", "Use specified config `file`")
	g.fs.StringVar(&g.dataDir, "data-dir", "", "Override the data `dir`")
	g.fs.StringVar(&g.progress, "progress", "", "Progress policy: linear|logarithmic")
	g.fs.BoolVarP(&g.help, "help", "h", false, "Show help")

	return g
}

func (g *globalFlags) parse(args []string) error {
	err := g.fs.Parse(args)
	if err != nil {
		return err
	}

	if g.fs.Changed("data-dir") && strings.TrimSpace(g.dataDir) == "" {
		return errEmptyDataDir
	}

	return nil
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}

		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `deliverables - track deadlines and watch the time run out

Usage: deliverables [global flags] <command> [args]

Global flags:`)
	_, _ = fmt.Fprint(w, globals.FlagUsages())
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'deliverables <command> --help' for command flags.")
}
