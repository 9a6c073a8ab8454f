// Command pdfbridge runs PDF authoring scripts: JavaScript programs that
// build documents through the pdf call surface and save them to disk.
//
// Usage:
//
//	pdfbridge [flags] script.js...
//	pdfbridge --job job.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/wudi/pdfbridge/calls"
	"github.com/wudi/pdfbridge/observability"
	"github.com/wudi/pdfbridge/scripting"
)

// Version is set at build time via ldflags.
var Version = "dev"

type options struct {
	jobFile string
	timeout time.Duration
	quiet   bool
	verbose bool
	version bool
	scripts []string
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("pdfbridge", flag.ContinueOnError)
	opts := &options{}
	fs.StringVarP(&opts.jobFile, "job", "j", "", "YAML job file with scripts and settings")
	fs.DurationVarP(&opts.timeout, "timeout", "t", 0, "per-script timeout (e.g. 30s, 2m)")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "show per-call details")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pdfbridge [flags] script.js...")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		fmt.Fprint(os.Stderr, fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.scripts = fs.Args()
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.version {
		fmt.Println("pdfbridge", Version)
		return
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
	// value, in which case runtime defaults apply and we continue.
	if opts.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	scripts := append([]string{}, opts.scripts...)
	timeout := opts.timeout
	if opts.jobFile != "" {
		job, err := loadJob(opts.jobFile)
		if err != nil {
			return err
		}
		scripts = append(scripts, job.Scripts...)
		if timeout == 0 && job.Timeout != "" {
			d, err := time.ParseDuration(job.Timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout in job file: %v", err)
			}
			timeout = d
		}
	}
	if len(scripts) == 0 {
		return errors.New("no scripts given, pass script paths or --job")
	}

	log := stderrLogger{verbose: opts.verbose, quiet: opts.quiet}
	module := calls.NewModule(calls.WithLogger(log))
	defer func() {
		if n := module.OpenDocuments(); n > 0 {
			log.Warn("releasing leftover documents", observability.Int("count", n))
		}
		module.Close()
	}()

	engine := scripting.NewEngine(scripting.WithLogger(log))
	if err := engine.RegisterCalls(module); err != nil {
		return err
	}

	for _, path := range scripts {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read script: %w", err)
		}
		if err := runScript(engine, string(src), timeout); err != nil {
			return fmt.Errorf("script %s: %w", path, err)
		}
		log.Info("script done", observability.String("script", path))
	}
	return nil
}

func runScript(engine scripting.Engine, src string, timeout time.Duration) error {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	_, err := engine.Execute(ctx, src)
	return err
}

// stderrLogger prints level-prefixed lines with key=value fields. Debug
// lines need verbose; quiet suppresses everything below Error.
type stderrLogger struct {
	verbose bool
	quiet   bool
	bound   []observability.Field
}

func (l stderrLogger) write(level, msg string, fields []observability.Field) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", level, msg)
	for _, f := range l.bound {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(os.Stderr, sb.String())
}

func (l stderrLogger) Debug(msg string, fields ...observability.Field) {
	if l.verbose && !l.quiet {
		l.write("debug", msg, fields)
	}
}

func (l stderrLogger) Info(msg string, fields ...observability.Field) {
	if !l.quiet {
		l.write("info", msg, fields)
	}
}

func (l stderrLogger) Warn(msg string, fields ...observability.Field) {
	if !l.quiet {
		l.write("warn", msg, fields)
	}
}

func (l stderrLogger) Error(msg string, fields ...observability.Field) {
	l.write("error", msg, fields)
}

func (l stderrLogger) With(fields ...observability.Field) observability.Logger {
	out := l
	out.bound = append(append([]observability.Field{}, l.bound...), fields...)
	return out
}
