// Package flagx lets several flag sets share one argument list. Each layer
// picks out only the flags it owns, so config and subcommand parsers never
// trip over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of the given flags and their
// values. A flag is kept either as "-f value" (value taken when the next
// argument does not start with '-') or as "-f=value".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// JsonConfigFlag returns the config file path given with -c or -config, or ""
// when neither is present. The last occurrence wins.
func JsonConfigFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

// SplitCommand splits args at the first positional argument, assuming every
// leading flag takes a value. It returns the leading flags, the command name
// and the command's own arguments. name is "" when no command is present.
func SplitCommand(args []string) (global []string, name string, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return args[:i], arg, args[i+1:]
		}
		if !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
		}
	}
	return args, "", nil
}
