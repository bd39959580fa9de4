// Stop-Wait Sim - Stop-and-Wait ARQ demonstration
// This program runs a discrete event simulation of the Stop-and-Wait
// protocol with probabilistic frame corruption and prints the event log
// and link utilization.
package main

import (
	"fmt"
	"os"

	"sigstudio/internal/arq"
	"sigstudio/internal/config"
	"sigstudio/internal/logging"
	"sigstudio/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Command line flag variables
var (
	cfgFile          string
	propagationDelay float64
	transmissionTime float64
	processingTime   float64
	frames           int
	errorProbability float64
	seed             int64
	logLevel         string
	showVersion      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stopwait-sim",
	Short: "Stop-and-Wait ARQ simulation",
	Long: `Stop-Wait Sim delivers a batch of frames over a lossy link using the
Stop-and-Wait protocol. Each frame arrives corrupted with the configured
probability; a corrupted frame costs a full extra round trip before the
retransmission goes out.

The report lists every send and acknowledgement event with its simulated
timestamp, then the delivery count, retransmissions, elapsed time and the
protocol utilization ceiling tf / (tf + 2tp + ta).

Example usage:
  stopwait-sim
  stopwait-sim --frames 20 --error-probability 0.3
  stopwait-sim --seed 42`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("Stop-Wait Sim"))
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
	rootCmd.Flags().Float64Var(&propagationDelay, "tp", 5.0, "one-way propagation delay (s)")
	rootCmd.Flags().Float64Var(&transmissionTime, "tf", 1.0, "frame transmission time (s)")
	rootCmd.Flags().Float64Var(&processingTime, "ta", 0.5, "receiver processing time (s)")
	rootCmd.Flags().IntVarP(&frames, "frames", "n", 10, "frames to deliver")
	rootCmd.Flags().Float64VarP(&errorProbability, "error-probability", "p", 0.1, "frame corruption probability")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for reproducible runs")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("arq.propagation_delay", rootCmd.Flags().Lookup("tp"))
	viper.BindPFlag("arq.transmission_time", rootCmd.Flags().Lookup("tf"))
	viper.BindPFlag("arq.processing_time", rootCmd.Flags().Lookup("ta"))
	viper.BindPFlag("arq.frames", rootCmd.Flags().Lookup("frames"))
	viper.BindPFlag("arq.error_probability", rootCmd.Flags().Lookup("error-probability"))
	viper.BindPFlag("arq.seed", rootCmd.Flags().Lookup("seed"))
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

	params := arq.Params{
		PropagationDelay: cfg.ARQ.PropagationDelay,
		TransmissionTime: cfg.ARQ.TransmissionTime,
		ProcessingTime:   cfg.ARQ.ProcessingTime,
		Frames:           cfg.ARQ.Frames,
		ErrorProbability: cfg.ARQ.ErrorProbability,
		Seed:             cfg.ARQ.Seed,
	}

	log.Info("Starting Stop-and-Wait simulation",
		zap.Int("frames", params.Frames),
		zap.Float64("error_probability", params.ErrorProbability),
		zap.Int64("seed", params.Seed))

	result, err := arq.Run(params)
	if err != nil {
		return err
	}

	arq.WriteReport(os.Stdout, params, result)
	return nil
}

// main is the entry point of the application
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
