// cbfdump prints the structure and contents of a CBF file, optionally
// exporting it to JSON or SQLite or exploring it in an interactive shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/robert-malhotra/go-cbf/cbf"
	"github.com/robert-malhotra/go-cbf/internal/config"
	"github.com/robert-malhotra/go-cbf/internal/export"
	"github.com/robert-malhotra/go-cbf/internal/logging"
)

const usage = `Usage: cbfdump [flags] <file.cbf>

Show information about a CBF file. Inputs compressed with gzip, bzip2 or xz
are decompressed transparently.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	block       string
	blockIndex  int
	jsonPath    string
	sqlitePath  string
	arrays      string
	digestCheck bool
	shell       bool
	verbose     bool
	path        string
}

func parseFlags(args []string) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("cbfdump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&o.configPath, "config", "c", "", "config file (.toml, .json or .jsonc)")
	fs.StringVarP(&o.block, "block", "b", "", "datablock to show, by name")
	fs.IntVar(&o.blockIndex, "block-index", -1, "datablock to show, by index")
	fs.StringVar(&o.jsonPath, "json", "", "write a JSON snapshot to this path")
	fs.StringVar(&o.sqlitePath, "sqlite", "", "write a SQLite database to this path")
	fs.StringVar(&o.arrays, "arrays", "", "array output: summary, full or none")
	fs.BoolVar(&o.digestCheck, "digest-check", false, "verify Content-MD5 of binary sections")
	fs.BoolVar(&o.shell, "shell", false, "start an interactive cursor shell")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return o, fs, err
	}
	if fs.NArg() != 1 {
		return o, fs, errors.New("input file argument required")
	}
	o.path = fs.Arg(0)
	return o, fs, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, usage)
	fmt.Fprint(w, fs.FlagUsages())
}

// settings merges the config file with flags; flags win when set.
func settings(o options, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if fs.Changed("block") {
		cfg.Datablock = o.block
	}
	if fs.Changed("arrays") {
		cfg.Arrays = o.arrays
	}
	if o.digestCheck {
		cfg.DigestCheck = true
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	o, fs, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(out, fs)
		return 0
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		printUsage(errOut, fs)
		return 2
	}

	cfg, err := settings(o, fs)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	logger, err := logging.Init("cbfdump", cfg.LogLevel, errOut)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	if err := dumpFile(o, cfg, logger, in, out); err != nil {
		logger.Error().Err(err).Str("file", o.path).Msg("cbfdump failed")
		return 1
	}
	return 0
}

func dumpFile(o options, cfg config.Config, logger zerolog.Logger, in io.Reader, out io.Writer) error {
	opts := []cbf.Option{cbf.WithLogger(logger)}
	if cfg.DigestCheck {
		opts = append(opts, cbf.WithDigestCheck())
	}
	h, err := cbf.Open(o.path, opts...)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := selectBlock(h, cfg.Datablock, o.blockIndex); err != nil {
		return err
	}

	if o.shell {
		return runShell(h, cfg, in, out)
	}

	if err := dump(h, cfg, out); err != nil {
		return err
	}

	if o.jsonPath != "" || o.sqlitePath != "" {
		blocks, err := h.Datablocks()
		if err != nil {
			return err
		}
		if o.jsonPath != "" {
			if err := export.WriteJSON(o.jsonPath, blocks, cfg.Arrays); err != nil {
				return err
			}
			logger.Info().Str("path", o.jsonPath).Int("datablocks", len(blocks)).Msg("wrote JSON snapshot")
		}
		if o.sqlitePath != "" {
			withData := cfg.Arrays == config.ArraysFull
			if err := export.WriteSQLite(context.Background(), o.sqlitePath, blocks, withData); err != nil {
				return err
			}
			logger.Info().Str("path", o.sqlitePath).Int("datablocks", len(blocks)).Msg("wrote SQLite database")
		}
	}
	return nil
}

// selectBlock positions the datablock cursor by name, by index, or on the
// first block.
func selectBlock(h *cbf.Handle, name string, index int) error {
	switch {
	case name != "":
		return h.FindDatablock(name)
	case index >= 0:
		return h.SelectDatablock(index)
	default:
		return h.SelectDatablock(0)
	}
}
