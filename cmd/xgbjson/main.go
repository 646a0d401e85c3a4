// Copyright (C) 2025 Treeloom Authors. All Rights Reserved.

// Program xgbjson inspects XGBoost JSON model files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/treeloom/xgbjson"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "xgbjson",
		Short:         "Tools for XGBoost JSON model files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.AddCommand(inspectCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize the ensemble stored in a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			m, err := xgbjson.LoadFile(args[0])
			if err != nil {
				return err
			}
			slog.Debug("model loaded", "path", args[0], "elapsed", time.Since(start))

			var nodes, leaves, depth int
			for _, t := range m.Trees {
				nodes += t.NumNodes()
				leaves += t.NumLeaves()
				if d := t.Depth(); d > depth {
					depth = d
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "trees:          %d\n", m.NumTree())
			fmt.Fprintf(w, "features:       %d\n", m.NumFeature)
			fmt.Fprintf(w, "output groups:  %d\n", m.NumOutputGroup)
			fmt.Fprintf(w, "transform:      %s\n", m.PredTransform)
			fmt.Fprintf(w, "global bias:    %g\n", m.GlobalBias)
			fmt.Fprintf(w, "total nodes:    %d (%d leaves)\n", nodes, leaves)
			fmt.Fprintf(w, "max tree depth: %d\n", depth)
			return nil
		},
	}
}
