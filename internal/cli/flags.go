package cli

import "flag"

const (
	defaultHelpDesc    = "Show help"
	defaultVersionDesc = "Print version and exit"
)

type HelpVersionFlags struct {
	Help    bool
	Version bool
}

// AddHelpVersionFlags registers -h/--help and --version. The short -v is left
// free for commands that use it for verbosity.
func AddHelpVersionFlags(fs *flag.FlagSet, helpDesc, versionDesc string) *HelpVersionFlags {
	if fs == nil {
		return &HelpVersionFlags{}
	}
	if helpDesc == "" {
		helpDesc = defaultHelpDesc
	}
	if versionDesc == "" {
		versionDesc = defaultVersionDesc
	}
	flags := &HelpVersionFlags{}
	fs.BoolVar(&flags.Help, "help", false, helpDesc)
	fs.BoolVar(&flags.Help, "h", false, helpDesc)
	fs.BoolVar(&flags.Version, "version", false, versionDesc)
	return flags
}

// AddToggle registers on and off flags that write the same target. Because
// flags are applied in command-line order the last one given wins.
func AddToggle(fs *flag.FlagSet, target *bool, on, off []string, onDesc, offDesc string) {
	if fs == nil || target == nil {
		return
	}
	for _, name := range on {
		fs.BoolFunc(name, onDesc, func(string) error {
			*target = true
			return nil
		})
	}
	for _, name := range off {
		fs.BoolFunc(name, offDesc, func(string) error {
			*target = false
			return nil
		})
	}
}

// AddChoice registers flags that each store a fixed value into target.
func AddChoice[T any](fs *flag.FlagSet, target *T, value T, names []string, desc string) {
	if fs == nil || target == nil {
		return
	}
	for _, name := range names {
		fs.BoolFunc(name, desc, func(string) error {
			*target = value
			return nil
		})
	}
}
