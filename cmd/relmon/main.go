// Command relmon runs the entity/relation monitor as a filter: it reads
// addent/delent/addrel/delrel/report commands from stdin and writes
// report lines to stdout until it sees "end" or reaches EOF.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relmon/relmon/internal/command"
	"github.com/relmon/relmon/internal/config"
	"github.com/relmon/relmon/internal/monitor"
)

var (
	configPath  string
	entityCap   int
	relationCap int
	innerCap    int
)

var rootCmd = &cobra.Command{
	Use:   "relmon",
	Short: "In-memory entity/relation monitor",
	Long: `relmon consumes a stream of addent/delent/addrel/delrel/report commands
on stdin, maintains the set of named entities and directed relationships
between them in memory, and emits a deterministic report line for every
report command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a config.yaml overriding the capacity defaults")
	rootCmd.Flags().IntVar(&entityCap, "entity-cap", 0, "initial entity map capacity (0 = use config/default)")
	rootCmd.Flags().IntVar(&relationCap, "relation-cap", 0, "initial relation map capacity (0 = use config/default)")
	rootCmd.Flags().IntVar(&innerCap, "inner-cap", 0, "initial per-relation inner map capacity (0 = use config/default)")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if entityCap > 0 {
		cfg.EntityCapacity = entityCap
	}
	if relationCap > 0 {
		cfg.RelationCapacity = relationCap
	}
	if innerCap > 0 {
		cfg.InnerCapacity = innerCap
	}

	store := monitor.New(cfg)
	dispatcher := command.New(store, cmd.OutOrStdout())
	return dispatcher.Run(cmd.InOrStdin())
}

func main() {
	rootCmd.SetIn(os.Stdin)
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
