/*
Copyright © 2023 Kovalev Pavel kovalev5690@gmail.com
*/package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Pavel7004/goRspParser/pkg/render"
	"github.com/Pavel7004/goRspParser/pkg/rsp"
)

// Config holds the options of one invocation. It is filled from flags
// once and not changed afterwards.
type Config struct {
	File         string
	Format       string
	MergeHeaders bool

	// header command only
	Output string
	Op     string
	Name   string
}

func NewRootCmd() *cobra.Command {
	var cfg Config
	cfg.Format = string(render.Text)

	var rootCmd = &cobra.Command{
		Use:   "rsp_parser",
		Short: "Utility that parses NIST RSP test vector files",
		Long: `rsp_parser reads NIST CAVP response (.rsp) files: bracketed
section headers, comments and blocks of "key = value" test vectors.

Example: rsp_parser -f SHA256ShortMsg.rsp
This will print all sections and their records.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAll(cmd.OutOrStdout(), cfg)
		},
	}

	addLogFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().StringVarP(&cfg.File, "file", "f", cfg.File, "path to the .rsp file")
	rootCmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format: text, rsp, json, yaml, toml or spew")
	rootCmd.Flags().BoolVar(&cfg.MergeHeaders, "merge-headers", cfg.MergeHeaders, "fold stacked [K = V] headers into one section")
	cobra.CheckErr(rootCmd.MarkFlagRequired("file"))

	rootCmd.AddCommand(cmdHeader())
	rootCmd.AddCommand(cmdVersion())
	return rootCmd
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "rsp_parser: %v\n", err)
		return 1
	}
	return 0
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.Bool("debug", false, "log debugging information")
	fs.Bool("verbose", false, "log more information")
	fs.Bool("quiet", false, "log less information")
}

func configureLogger(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	logrus.SetOutput(cmd.ErrOrStderr())
	switch {
	case debug:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.ErrorLevel)
	case verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func readerOptions(cfg Config) []rsp.Option {
	return []rsp.Option{
		rsp.WithLogger(logrus.WithField("file", cfg.File)),
		rsp.WithMergeHeaders(cfg.MergeHeaders),
	}
}

// listAll renders into a buffer first so a failure prints nothing to out.
func listAll(out io.Writer, cfg Config) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	secs, err := rsp.Parse(cfg.File, readerOptions(cfg)...)
	if err != nil {
		return err
	}
	logrus.Infof("Parsed %d sections from %s", len(secs), cfg.File)

	var buf bytes.Buffer
	if err := render.Render(&buf, secs, format); err != nil {
		return err
	}
	_, err = buf.WriteTo(out)
	return err
}
