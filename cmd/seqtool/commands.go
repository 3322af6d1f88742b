package main

import (
	"context"
	"fmt"
	"io"

	"github.com/milk9111/cinematic/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.design/x/clipboard"
	"golang.org/x/sync/errgroup"
)

type rootOptions struct {
	LogLevel string
	Jobs     int
}

func (o *rootOptions) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "loglevel", "info", "log level (debug, info, warn, error)")
	fs.IntVarP(&o.Jobs, "jobs", "j", 4, "files validated at once")
}

// writeClipboard is replaced in tests; the real clipboard needs a display.
var writeClipboard = func(data []byte) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func NewRootCmd(log *logrus.Logger) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "seqtool",
		Short:         "Inspect cinematic sequence projects",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := logrus.ParseLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newValidateCmd(log, opts),
		newDurationCmd(),
		newCopyCmd(log),
	)
	return cmd
}

func newValidateCmd(log logrus.FieldLogger, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check every sequence in one or more project files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(cmd.Context(), cmd.OutOrStdout(), log, args, opts.Jobs)
		},
	}
}

// validateFiles checks the files concurrently and reports them in argument
// order. It fails if any file is unreadable or holds an invalid sequence.
func validateFiles(ctx context.Context, out io.Writer, log logrus.FieldLogger, files []string, jobs int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]error, len(files))
	counts := make([]int, len(files))

	g, _ := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			p, err := project.Load(file)
			if err == nil {
				err = p.Validate()
				counts[i] = len(p.Sequences)
			}
			results[i] = err
			log.WithField("file", file).Debug("validated")
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, file := range files {
		if results[i] != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s\n  %v\n", file, results[i])
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d sequences)\n", file, counts[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(files))
	}
	return nil
}

func newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration FILE NAME",
		Short: "Print the approximate length of a sequence in seconds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := findSequence(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", s.ApproxDuration())
			return nil
		},
	}
}

func newCopyCmd(log logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "copy FILE NAME",
		Short: "Copy a sequence's JSON data to the clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := findSequence(args[0], args[1])
			if err != nil {
				return err
			}
			if err := writeClipboard([]byte(s.SequenceData)); err != nil {
				return fmt.Errorf("clipboard: %w", err)
			}
			log.WithField("sequence", s.Name).Info("copied to clipboard")
			return nil
		},
	}
}

func findSequence(file, name string) (*project.Sequence, error) {
	p, err := project.Load(file)
	if err != nil {
		return nil, err
	}
	s, ok := p.Find(name)
	if !ok {
		return nil, fmt.Errorf("%s: no sequence named %q", file, name)
	}
	return s, nil
}
