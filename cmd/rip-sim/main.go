// RIP Sim - distance-vector routing demonstration
// This program runs synchronous distance-vector exchanges over a small
// weighted topology and narrates the routing tables round by round until
// they converge.
package main

import (
	"fmt"
	"os"

	"sigstudio/internal/config"
	"sigstudio/internal/logging"
	"sigstudio/internal/ripsim"
	"sigstudio/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Command line flag variables
var (
	cfgFile       string
	source        string
	destination   string
	maxIterations int
	displayRouter string
	logLevel      string
	showVersion   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rip-sim",
	Short: "Distance-vector routing simulation",
	Long: `RIP Sim runs the distance-vector (Bellman-Ford) exchange over a five
router demonstration topology. Each iteration every router offers its table
to its neighbors; the run stops when an iteration produces no changes or
the iteration limit is reached.

The report shows the initial tables, the tables and changes after every
iteration, and the shortest path from the source to the destination.

Example usage:
  rip-sim
  rip-sim --source A --destination E
  rip-sim --router C`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("RIP Sim"))
			return
		}
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().StringVarP(&source, "source", "s", "A", "path source router")
	rootCmd.Flags().StringVarP(&destination, "destination", "d", "E", "path destination router")
	rootCmd.Flags().IntVar(&maxIterations, "max-iterations", 10, "exchange rounds before giving up")
	rootCmd.Flags().StringVarP(&displayRouter, "router", "r", "", "show tables for one router only")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("rip.source", rootCmd.Flags().Lookup("source"))
	viper.BindPFlag("rip.destination", rootCmd.Flags().Lookup("destination"))
	viper.BindPFlag("rip.max_iterations", rootCmd.Flags().Lookup("max-iterations"))
	viper.BindPFlag("logging.level", rootCmd.Flags().Lookup("log-level"))
}

// run is the main application logic
func run() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	topo := ripsim.DefaultTopology()
	if !topo.HasRouter(cfg.RIP.Source) {
		return fmt.Errorf("unknown source router %q", cfg.RIP.Source)
	}
	if !topo.HasRouter(cfg.RIP.Destination) {
		return fmt.Errorf("unknown destination router %q", cfg.RIP.Destination)
	}
	if displayRouter != "" && !topo.HasRouter(displayRouter) {
		return fmt.Errorf("unknown router %q", displayRouter)
	}

	log.Info("Starting distance-vector simulation",
		zap.String("source", cfg.RIP.Source),
		zap.String("destination", cfg.RIP.Destination),
		zap.Int("max_iterations", cfg.RIP.MaxIterations))

	result := ripsim.Run(topo, cfg.RIP.MaxIterations)

	ripsim.WriteTopology(os.Stdout, topo, cfg.RIP.Source, cfg.RIP.Destination)
	ripsim.WriteReport(os.Stdout, topo, result, cfg.RIP.Source, cfg.RIP.Destination,
		ripsim.ReportOptions{DisplayRouter: displayRouter, StepDelay: cfg.RIP.StepDelay})
	return nil
}

// main is the entry point of the application
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
