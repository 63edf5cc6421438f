package minow

/*
NAME

minow - Run GRASSMARLIN fingerprinting on a packet capture

SYNOPSIS

minow -f DIR -p FILE [options]

DESCRIPTION

This program starts the prebuilt fingerprinting jar with java, passing
a directory of fingerprint definitions and a packet capture file.
Standard output of java is collected until java has finished and then
printed line by line. Standard error of java is discarded.
If java fails, no output is printed.

OPTIONS

-f, --fingerprints DIR
Directory of fingerprint definition files. Required.

-p, --pcap FILE
Packet capture file to analyze. Required.

-j, --java PATH
Path of java executable. Default: /bin/java

-n, --dry-run
Print planned invocation as YAML, don't start java.

--show-stderr
Show standard error of java.

-v, --verbose
Print diagnostic messages.

-h
Prints a brief help message and exits.
*/

import (
	"fmt"

	"github.com/minow/minow/pkg/conf"
	"github.com/minow/minow/pkg/diag"
	"github.com/minow/minow/pkg/fileop"
	"github.com/minow/minow/pkg/invoke"
	"github.com/minow/minow/pkg/oslink"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func Main(d oslink.Data) int {
	fs := pflag.NewFlagSet(d.Args[0], pflag.ContinueOnError)
	fs.SetOutput(d.Stderr)

	// Setup custom usage function.
	fs.Usage = func() {
		fmt.Fprintf(d.Stderr, "Usage: %s -f DIR -p FILE [options]\n%s",
			d.Args[0], fs.FlagUsages())
	}

	cfg, err := conf.Parse(fs, d.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(d.Stderr, "Error: %s\n", err)
		fs.Usage()
		return 2
	}
	log := diag.New(d.Stderr, cfg.Verbose)
	inv := invoke.New(cfg.Java, cfg.Fingerprints, cfg.Pcap)

	if cfg.DryRun {
		if err := printPlan(d, inv); err != nil {
			fmt.Fprintf(d.Stderr, "Error: %s\n", err)
			return 1
		}
		return 0
	}

	checkPaths(log, inv)
	r := &invoke.Runner{Command: d.Command, Log: log}
	if cfg.ShowStderr {
		r.Stderr = d.Stderr
	}
	res, err := r.Run(inv)
	if err != nil {
		fmt.Fprintf(d.Stderr, "Error: %s\n", err)
		return 1
	}
	if err := invoke.Emit(d.Stdout, invoke.Lines(res.Stdout)); err != nil {
		fmt.Fprintf(d.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// Paths are only examined for diagnostic messages.
// Java itself reports its errors.
func checkPaths(log logrus.FieldLogger, inv *invoke.Invocation) {
	check := func(what, path, want string) {
		if kind := fileop.Kind(path); kind != want {
			log.WithField("found", kind).Debugf("%s %s is no %s", what, path, want)
		}
	}
	check("Fingerprints", inv.Fingerprints, "directory")
	check("Pcap", inv.Pcap, "file")
	check("Jar", inv.Jar, "file")
}

type plan struct {
	invoke.Invocation `yaml:",inline"`
	Args              []string `yaml:"args"`
}

func printPlan(d oslink.Data, inv *invoke.Invocation) error {
	enc := yaml.NewEncoder(d.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(plan{Invocation: *inv, Args: inv.Args()}); err != nil {
		return errors.Wrap(err, "Can't print plan")
	}
	return errors.Wrap(enc.Close(), "Can't print plan")
}
