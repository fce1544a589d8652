/*
Copyright © 2023 Kovalev Pavel kovalev5690@gmail.com
*/package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pavel7004/goRspParser/pkg/header"
	"github.com/Pavel7004/goRspParser/pkg/rsp"
	"github.com/Pavel7004/goRspParser/pkg/vectors"
)

func cmdHeader() *cobra.Command {
	var cfg Config

	var cmd = &cobra.Command{
		Use:   "header",
		Short: "Generate a C header from the vectors of an .rsp file",
		Long: `header classifies every record of the file as a hash, encrypt
or decrypt vector and writes them as a static C array.

Example: rsp_parser header -f CBCGFSbox128.rsp -o cbc_gfsbox128.h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeHeader(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.File, "file", "f", cfg.File, "path to the .rsp file")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "write the header to this file instead of stdout")
	cmd.Flags().StringVar(&cfg.Op, "op", "auto", "vector operation: auto, hash, encrypt or decrypt")
	cmd.Flags().StringVar(&cfg.Name, "name", cfg.Name, "C symbol prefix (default: file name)")
	cmd.Flags().BoolVar(&cfg.MergeHeaders, "merge-headers", cfg.MergeHeaders, "fold stacked [K = V] headers into one section")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))
	return cmd
}

func writeHeader(stdout io.Writer, cfg Config) error {
	op, err := vectors.ParseOperation(cfg.Op)
	if err != nil {
		return err
	}

	secs, err := rsp.Parse(cfg.File, readerOptions(cfg)...)
	if err != nil {
		return err
	}

	vecs, err := vectors.Classify(secs, op)
	if err != nil {
		return errors.Wrap(err, cfg.File)
	}
	logrus.Infof("Classified %d vectors from %s", len(vecs), cfg.File)

	var buf bytes.Buffer
	if err := header.Generate(&buf, header.Options{Name: cfg.Name, Source: cfg.File}, vecs); err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err = buf.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write header")
	}
	logrus.Infof("%s: wrote %d bytes", cfg.Output, buf.Len())
	return nil
}
