package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		if !errors.Is(err, errShown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. main reports errors itself so a
// calculation failure already rendered by calc is not printed twice.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ductcalc",
		Short:         "Air duct property calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func calcCmd() *cobra.Command {
	var f ductFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the properties of one duct",
		Example: "  ductcalc calc --shape Rectangular --width 700 --height 400 --flow 2000\n" +
			"  ductcalc calc --shape Round --diameter 250 --flow 1000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := loadDefaults()
			if err != nil {
				return err
			}
			return runCalc(cmd.OutOrStdout(), f.input(cmd).WithDefaults(def), asJSON)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func batchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch [ducts.yaml]",
		Short: "Calculate every duct listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefaults()
			if err != nil {
				return err
			}
			return runBatch(cmd.OutOrStdout(), args[0], def, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")
	return cmd
}

func reportCmd() *cobra.Command {
	var f ductFlags
	var out string
	var meta reportMeta

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report for one duct",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := loadDefaults()
			if err != nil {
				return err
			}
			return runReport(cmd.OutOrStdout(), out, meta, f.input(cmd).WithDefaults(def))
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "duct-report.pdf", "output PDF path")
	cmd.Flags().StringVar(&meta.project, "project", "", "project name")
	cmd.Flags().StringVar(&meta.author, "author", "", "report author")
	cmd.Flags().StringVar(&meta.title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.notes, "notes", "", "free-text notes")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DUCTWORK_ADDR)")
	return cmd
}
