package conf

/*
Get arguments and options from command line.

Flags are described by struct Config and mapped to pflag flags by
package sflags. Required flags are checked after parsing, because
pflag has no notion of them.
*/

import (
	"fmt"
	"strings"

	"github.com/octago/sflags"
	"github.com/octago/sflags/gen/gpflag"
	flag "github.com/spf13/pflag"
)

// Default path of java executable.
const DefaultJava = "/bin/java"

// Config holds program flags.
type Config struct {
	Fingerprints string `flag:"fingerprints f" desc:"Directory of fingerprint definition files"`
	Pcap         string `flag:"pcap p" desc:"Packet capture file to analyze"`
	Java         string `flag:"java j" desc:"Path of java executable"`
	DryRun       bool   `flag:"dry-run n" desc:"Print planned invocation as YAML, don't start java"`
	ShowStderr   bool   `flag:"show-stderr" desc:"Show stderr of java instead of discarding it"`
	Verbose      bool   `flag:"verbose v" desc:"Print diagnostic messages"`
}

// Flags that must be given on command line.
var required = []string{"fingerprints", "pcap"}

// MissingArgError tells which required flags were not given.
type MissingArgError struct {
	Names []string
}

func (e *MissingArgError) Error() string {
	l := make([]string, len(e.Names))
	for i, n := range e.Names {
		l[i] = "--" + n
	}
	return fmt.Sprintf("required flag(s) %s not set", strings.Join(l, ", "))
}

func defaultOptions(fs *flag.FlagSet) *Config {
	cfg := &Config{
		// Use java found in standard location.
		Java: DefaultJava,
	}
	err := gpflag.ParseTo(cfg, fs, sflags.FlagDivider("-"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// Parse defines flags at fs and parses args.
// Returns flag.ErrHelp unchanged, if help was requested.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := defaultOptions(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("Unexpected argument(s): %s",
			strings.Join(fs.Args(), " "))
	}

	// A flag given with empty value counts as present.
	var missing []string
	for _, name := range required {
		if !fs.Changed(name) {
			missing = append(missing, name)
		}
	}
	if missing != nil {
		return nil, &MissingArgError{Names: missing}
	}
	return cfg, nil
}
