package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/entry-compat/internal/compat"
	"github.com/phrazzld/entry-compat/internal/config"
	"github.com/phrazzld/entry-compat/internal/domain"
	"github.com/phrazzld/entry-compat/internal/platform/logger"
	"github.com/phrazzld/entry-compat/internal/scheme"
	"github.com/phrazzld/entry-compat/internal/service"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var app *application

	rootCmd := &cobra.Command{
		Use:   "compat",
		Short: "Apply energy compatibility corrections to computed entries",
		Long: `compat makes total energies from different calculation settings comparable.

Entries are read as a JSON array. Each is checked against the selected scheme
(pseudopotentials, Hubbard U values, run type) and, if compatible, corrected
for gas-phase references, oxide/peroxide/superoxide/ozonide bonding and,
optionally, aqueous references.

Configuration comes from compat.yaml, COMPAT_* environment variables and flags,
in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = initializeApp(cmd, flags)
			return err
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file (default ./compat.yaml if present)")
	pf.StringVar(&flags.family, "family", config.DefaultFamily, "Scheme family: MaterialsProject or MIT")
	pf.StringVar(&flags.compatType, "compat-type", config.DefaultCompatType, "GGA or Advanced")
	pf.BoolVar(&flags.correctPeroxide, "correct-peroxide", config.DefaultCorrectPeroxide, "Distinguish peroxides, superoxides and ozonides")
	pf.BoolVar(&flags.aqueous, "aqueous", false, "Add the aqueous correction")
	pf.StringVar(&flags.tablesDir, "tables-dir", "", "Directory overriding the embedded correction tables")
	pf.StringVar(&flags.logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "process [file]",
		Short: "Correct a batch of entries and report accepted and rejected ones",
		Long:  "Reads entries from file, or stdin when file is omitted or \"-\", and writes the result as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, app, args)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "breakdown [file]",
		Short: "Show the per-rule corrections of each entry without applying them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreakdown(cmd, app, args)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schemes",
		Short: "List the available scheme families and their corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemes(cmd, app)
		},
	})

	return rootCmd
}

// openInput returns the named file, or stdin for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open entries: %w", err)
	}
	return f, nil
}

func readEntries(cmd *cobra.Command, args []string) ([]*domain.ComputedEntry, error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return service.DecodeEntries(in)
}

func runProcess(cmd *cobra.Command, app *application, args []string) error {
	entries, err := readEntries(cmd, args)
	if err != nil {
		return err
	}
	c, err := app.scheme()
	if err != nil {
		return err
	}

	ctx := logger.WithRunID(logger.WithLogger(cmd.Context(), app.logger), uuid.NewString())
	result, err := app.service.Process(ctx, c, entries)
	if err != nil {
		return err
	}
	return service.EncodeResult(cmd.OutOrStdout(), result)
}

// breakdownView is one line of the breakdown report.
type breakdownView struct {
	EntryID   uuid.UUID          `json:"entry_id"`
	Formula   string             `json:"formula"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
	Total     float64            `json:"total"`
	Rejected  string             `json:"rejected,omitempty"`
}

func runBreakdown(cmd *cobra.Command, app *application, args []string) error {
	entries, err := readEntries(cmd, args)
	if err != nil {
		return err
	}
	c, err := app.scheme()
	if err != nil {
		return err
	}

	views := make([]breakdownView, 0, len(entries))
	for _, entry := range entries {
		view := breakdownView{EntryID: entry.EntryID, Formula: entry.Composition.ReducedFormula()}
		breakdown, err := app.service.Breakdown(c, entry)
		switch {
		case errors.Is(err, compat.ErrIncompatible):
			view.Rejected = err.Error()
		case err != nil:
			return err
		default:
			view.Breakdown = breakdown
			for _, v := range breakdown {
				view.Total += v
			}
		}
		views = append(views, view)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func runSchemes(cmd *cobra.Command, app *application) error {
	out := cmd.OutOrStdout()
	selected := app.options()

	for _, family := range scheme.Families() {
		opts := selected
		opts.Family = family

		c, err := app.registry.Get(opts)
		if err != nil {
			return err
		}
		marker := " "
		if family == selected.Family {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, opts.Name())
		for _, correction := range c.Corrections() {
			fmt.Fprintf(out, "    %s\n", correction)
		}
	}
	return nil
}
