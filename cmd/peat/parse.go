package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"peat/internal/cli"
	"peat/internal/config"
)

type parsedArgs struct {
	Options     config.Options
	Command     string
	ShowVersion bool
}

func parseArgs(args []string, lookupEnv func(string) (string, bool), out io.Writer) (parsedArgs, error) {
	options := config.Defaults()

	configPath := findConfigPath(args, lookupEnv)
	if configPath != "" {
		store, err := config.LoadFile(configPath)
		if err != nil {
			return parsedArgs{}, usageErr(err)
		}
		if err := options.ApplyStore(store); err != nil {
			return parsedArgs{}, usageErr(fmt.Errorf("%s: %w", configPath, err))
		}
	}
	if err := options.ApplyEnv(lookupEnv); err != nil {
		return parsedArgs{}, usageErr(err)
	}

	fs := flag.NewFlagSet("peat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	setInterval := func(value string) error {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || parsed <= 0 {
			return config.ErrInvalidInterval
		}
		options.IntervalMS = parsed
		return nil
	}
	fs.Func("i", "interval between checks in milliseconds", setInterval)
	fs.Func("interval", "interval between checks in milliseconds", setInterval)
	cli.AddChoice(fs, &options.IntervalMS, 0, []string{"I", "smart-interval"}, "determine the interval from the number of watched paths")
	cli.AddToggle(fs, &options.Dynamic, []string{"d", "dynamic"}, []string{"D", "no-dynamic"},
		"read a command that generates the watch list from standard input",
		"read the list of paths to watch from standard input")
	cli.AddToggle(fs, &options.Clear, []string{"c", "clear"}, []string{"C", "no-clear"},
		"clear the screen before reruns", "don't clear the screen before reruns")
	cli.AddToggle(fs, &options.Verbose, []string{"v", "verbose"}, []string{"q", "quiet"},
		"show extra logging output", "don't show extra logging output")
	cli.AddChoice(fs, &options.Separator, config.SeparatorWhitespace, []string{"w", "whitespace"}, "paths are separated by whitespace")
	cli.AddChoice(fs, &options.Separator, config.SeparatorNewline, []string{"n", "newlines"}, "paths are separated by newlines")
	cli.AddChoice(fs, &options.Separator, config.SeparatorSpace, []string{"s", "spaces"}, "paths are separated by spaces")
	cli.AddChoice(fs, &options.Separator, config.SeparatorNUL, []string{"0", "zero"}, "paths are separated by null bytes")
	fs.StringVar(&options.Shell, "shell", options.Shell, "shell used to run commands")
	fs.Func("log-level", "minimum log level", func(value string) error {
		level, err := config.ParseLogLevel(value)
		if err != nil {
			return err
		}
		options.LogLevel = level
		return nil
	})
	fs.String("config", configPath, "config file (TOML or YAML)")
	helpVersion := cli.AddHelpVersionFlags(fs, "Show this help message", "Print version and exit")

	positional, err := cli.ParseInterspersed(fs, args)
	if err != nil {
		return parsedArgs{}, usageErr(err)
	}

	if helpVersion.Help {
		printUsage(out)
		return parsedArgs{}, flag.ErrHelp
	}
	if helpVersion.Version {
		return parsedArgs{ShowVersion: true}, nil
	}
	if len(positional) != 1 {
		return parsedArgs{}, usageErrf("exactly one command must be given")
	}

	return parsedArgs{
		Options: options,
		Command: positional[0],
	}, nil
}

// findConfigPath locates --config ahead of flag parsing so the file can
// supply defaults that later flags override.
func findConfigPath(args []string, lookupEnv func(string) (string, bool)) string {
	path := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			path = value
			continue
		}
		if i+1 < len(args) {
			path = args[i+1]
			i++
		}
	}
	if path == "" && lookupEnv != nil {
		if value, ok := lookupEnv(config.EnvConfig); ok {
			path = value
		}
	}
	return strings.TrimSpace(path)
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: peat [options] COMMAND")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "COMMAND should be given as a single argument using a shell string.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "A list of paths to watch should be piped in on standard input.")
	fmt.Fprintln(out, "If --dynamic is given, a command to generate the list should be piped in")
	fmt.Fprintln(out, "instead. It is run to regenerate the list before each check.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Options:")
	writeOption(out, "-i, --interval N", "interval between checks in milliseconds")
	writeOption(out, "-I, --smart-interval", "determine the interval from the number of paths (default)")
	writeOption(out, "-d, --dynamic", "read a command that generates the watch list on standard input")
	writeOption(out, "-D, --no-dynamic", "read the list of paths on standard input (default)")
	writeOption(out, "-c, --clear", "clear the screen before reruns (default)")
	writeOption(out, "-C, --no-clear", "don't clear the screen before reruns")
	writeOption(out, "-v, --verbose", "show extra logging output (default)")
	writeOption(out, "-q, --quiet", "don't show extra logging output")
	writeOption(out, "-w, --whitespace", "paths are separated by whitespace (default)")
	writeOption(out, "-n, --newlines", "paths are separated by newlines")
	writeOption(out, "-s, --spaces", "paths are separated by spaces")
	writeOption(out, "-0, --zero", "paths are separated by null bytes")
	writeOption(out, "--shell SHELL", "shell used to run commands (env: PEAT_SHELL, default: \""+config.DefaultShell()+"\")")
	writeOption(out, "--log-level LEVEL", "debug, info, warning or error; -q still hides info (env: PEAT_LOG_LEVEL)")
	writeOption(out, "--config PATH", "TOML or YAML config file (env: PEAT_CONFIG)")
	writeOption(out, "-h, --help", "Show this help message")
	writeOption(out, "--version", "Print version and exit")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  find . | peat './test.sh'")
	fmt.Fprintln(out, "  find . -name '*.py' -print0 | peat -0 'rm *.pyc'")
	fmt.Fprintln(out, "  echo find . -name '*.py' | peat --dynamic './test.sh'")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Exit codes:")
	fmt.Fprintln(out, "  1    Usage or fatal error")
	fmt.Fprintln(out, "  130  Interrupted")
}

func writeOption(out io.Writer, name, desc string) {
	fmt.Fprintf(out, "  %-22s %s\n", name, desc)
}
