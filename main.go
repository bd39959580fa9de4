// Sigstudio - digital communication teaching toolkit
// This program bundles the interactive signal explorers and the protocol
// simulations behind a single command with one subcommand per tool.
package main

import (
	"fmt"
	"os"

	"sigstudio/internal/arq"
	"sigstudio/internal/config"
	"sigstudio/internal/logging"
	"sigstudio/internal/ripsim"
	"sigstudio/internal/ui"
	"sigstudio/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Command line flag variables
var (
	cfgFile     string
	braille     bool
	logLevel    string
	showVersion bool
	ripRouter   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sigstudio",
	Short: "Digital communication teaching toolkit",
	Long: `Sigstudio bundles terminal visualizations of the core digital
communication ideas: line encoding, signal composition and spectra,
quadrature amplitude modulation, distance-vector routing and the
Stop-and-Wait protocol.

Example usage:
  sigstudio encoding --bits 1101 --scheme manchester
  sigstudio spectrum
  sigstudio qam --order 16
  sigstudio rip --source A --destination E
  sigstudio stopwait --frames 20 --seed 42`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("Sigstudio"))
			return
		}
		cmd.Help()
	},
}

// encodingCmd runs the line-encoding session
var encodingCmd = &cobra.Command{
	Use:   "encoding",
	Short: "Interactive line-encoding visualizer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(func(cfg *config.Config) (ui.Session, error) {
			return ui.NewEncodingSession(cfg)
		})
	},
}

// spectrumCmd runs the signal-composition session
var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Interactive signal composition and spectrum visualizer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(func(cfg *config.Config) (ui.Session, error) {
			return ui.NewSpectrumSession(cfg)
		})
	},
}

// qamCmd runs the QAM modulation session
var qamCmd = &cobra.Command{
	Use:   "qam",
	Short: "Interactive QAM modulation visualizer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(func(cfg *config.Config) (ui.Session, error) {
			return ui.NewQAMSession(cfg)
		})
	},
}

// ripCmd runs the distance-vector routing simulation
var ripCmd = &cobra.Command{
	Use:   "rip",
	Short: "Distance-vector routing simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, closeLog, err := setup()
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
		if ripRouter != "" && !topo.HasRouter(ripRouter) {
			return fmt.Errorf("unknown router %q", ripRouter)
		}

		log.Info("Starting distance-vector simulation",
			zap.String("source", cfg.RIP.Source),
			zap.String("destination", cfg.RIP.Destination))

		result := ripsim.Run(topo, cfg.RIP.MaxIterations)
		ripsim.WriteTopology(os.Stdout, topo, cfg.RIP.Source, cfg.RIP.Destination)
		ripsim.WriteReport(os.Stdout, topo, result, cfg.RIP.Source, cfg.RIP.Destination,
			ripsim.ReportOptions{DisplayRouter: ripRouter, StepDelay: cfg.RIP.StepDelay})
		return nil
	},
}

// stopwaitCmd runs the Stop-and-Wait protocol simulation
var stopwaitCmd = &cobra.Command{
	Use:   "stopwait",
	Short: "Stop-and-Wait ARQ simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, closeLog, err := setup()
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
			zap.Float64("error_probability", params.ErrorProbability))

		result, err := arq.Run(params)
		if err != nil {
			return err
		}
		arq.WriteReport(os.Stdout, params, result)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&braille, "braille", false, "render waveforms with braille dot cells")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("render.braille", rootCmd.PersistentFlags().Lookup("braille"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	encodingCmd.Flags().StringP("bits", "b", "10110010", "initial bit pattern")
	encodingCmd.Flags().StringP("scheme", "s", "NRZ-L", "initial encoding scheme")
	encodingCmd.Flags().Float64P("period", "p", 1.0, "bit period in seconds")
	viper.BindPFlag("encoding.bit_pattern", encodingCmd.Flags().Lookup("bits"))
	viper.BindPFlag("encoding.scheme", encodingCmd.Flags().Lookup("scheme"))
	viper.BindPFlag("encoding.bit_period", encodingCmd.Flags().Lookup("period"))

	spectrumCmd.Flags().Float64("dc", 0, "initial DC offset")
	spectrumCmd.Flags().Float64("sample-rate", 1000, "sample rate (Sps)")
	spectrumCmd.Flags().Float64P("duration", "d", 1.0, "signal duration in seconds")
	viper.BindPFlag("spectrum.dc_offset", spectrumCmd.Flags().Lookup("dc"))
	viper.BindPFlag("spectrum.sample_rate", spectrumCmd.Flags().Lookup("sample-rate"))
	viper.BindPFlag("spectrum.duration", spectrumCmd.Flags().Lookup("duration"))

	qamCmd.Flags().StringP("bits", "b", "0010111001", "initial bit pattern")
	qamCmd.Flags().IntP("order", "m", 4, "modulation order (4, 16, 64, 256)")
	qamCmd.Flags().Float64("carrier", 10, "carrier frequency (Hz)")
	viper.BindPFlag("qam.bit_pattern", qamCmd.Flags().Lookup("bits"))
	viper.BindPFlag("qam.order", qamCmd.Flags().Lookup("order"))
	viper.BindPFlag("qam.carrier_freq", qamCmd.Flags().Lookup("carrier"))

	ripCmd.Flags().StringP("source", "s", "A", "path source router")
	ripCmd.Flags().StringP("destination", "d", "E", "path destination router")
	ripCmd.Flags().Int("max-iterations", 10, "exchange rounds before giving up")
	ripCmd.Flags().StringVarP(&ripRouter, "router", "r", "", "show tables for one router only")
	viper.BindPFlag("rip.source", ripCmd.Flags().Lookup("source"))
	viper.BindPFlag("rip.destination", ripCmd.Flags().Lookup("destination"))
	viper.BindPFlag("rip.max_iterations", ripCmd.Flags().Lookup("max-iterations"))

	stopwaitCmd.Flags().Float64("tp", 5.0, "one-way propagation delay (s)")
	stopwaitCmd.Flags().Float64("tf", 1.0, "frame transmission time (s)")
	stopwaitCmd.Flags().Float64("ta", 0.5, "receiver processing time (s)")
	stopwaitCmd.Flags().IntP("frames", "n", 10, "frames to deliver")
	stopwaitCmd.Flags().Float64P("error-probability", "p", 0.1, "frame corruption probability")
	stopwaitCmd.Flags().Int64("seed", 1, "RNG seed for reproducible runs")
	viper.BindPFlag("arq.propagation_delay", stopwaitCmd.Flags().Lookup("tp"))
	viper.BindPFlag("arq.transmission_time", stopwaitCmd.Flags().Lookup("tf"))
	viper.BindPFlag("arq.processing_time", stopwaitCmd.Flags().Lookup("ta"))
	viper.BindPFlag("arq.frames", stopwaitCmd.Flags().Lookup("frames"))
	viper.BindPFlag("arq.error_probability", stopwaitCmd.Flags().Lookup("error-probability"))
	viper.BindPFlag("arq.seed", stopwaitCmd.Flags().Lookup("seed"))

	rootCmd.AddCommand(encodingCmd, spectrumCmd, qamCmd, ripCmd, stopwaitCmd)
}

// setup loads the configuration and opens the logger. The returned cleanup
// closes the log file sink.
func setup() (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	log, closeLog, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closeLog, nil
}

// runSession starts one of the interactive explorers
func runSession(newSession func(*config.Config) (ui.Session, error)) error {
	cfg, log, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	session, err := newSession(cfg)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return ui.Run(session, os.Stdin, os.Stdout, log)
}

// main is the entry point of the application
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
