package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	batch "Ductwork/internal/calc/batch"
	duct "Ductwork/internal/calc/duct"
	report "Ductwork/internal/calc/report"
	config "Ductwork/internal/config"
	server "Ductwork/internal/server"
)

type reportMeta struct {
	project string
	author  string
	title   string
	notes   string
}

func loadDefaults() (duct.Defaults, error) {
	cfg, err := config.Load()
	if err != nil {
		return duct.Defaults{}, err
	}
	return cfg.Defaults, nil
}

// errShown marks a failure whose message is already in the command output.
var errShown = errors.New("already shown")

func runCalc(w io.Writer, in duct.Input, asJSON bool) error {
	res, err := duct.Calculate(in)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprintln(w, renderResult(res))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errShown, err)
	}
	return nil
}

func runBatch(w io.Writer, path string, def duct.Defaults, asJSON bool) error {
	file, err := duct.LoadFile(path, def)
	if err != nil {
		return err
	}
	res, err := batch.Calculate(batch.Input{Items: file.Inputs()}, file.Defaults)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, r := range res.Results {
			fmt.Fprintln(w, renderResult(r))
		}
		fmt.Fprintln(w, renderSummary(res))
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d ducts failed", res.Failed, res.Count)
	}
	return nil
}

func runReport(w io.Writer, path string, meta reportMeta, in duct.Input) error {
	res, err := duct.Calculate(in)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	rin := report.Input{
		Project: meta.project,
		Author:  meta.author,
		Title:   meta.title,
		Notes:   meta.notes,
		Duct:    in,
	}
	if err := report.Write(f, rin, res, time.Now()); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Report written to %s\n", path)
	return nil
}

func runServe(ctx context.Context, addr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	return server.Run(ctx, cfg)
}
