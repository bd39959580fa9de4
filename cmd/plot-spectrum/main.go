// Plot Spectrum - interactive composite-signal explorer
// This program synthesizes a sum of sinusoids plus a DC offset, renders the
// time-domain waveform and its magnitude spectrum, and redraws on every
// parameter change.
package main

import (
	"fmt"
	"os"

	"sigstudio/internal/config"
	"sigstudio/internal/logging"
	"sigstudio/internal/ui"
	"sigstudio/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command line flag variables
var (
	cfgFile     string
	dcOffset    float64
	sampleRate  float64
	duration    float64
	braille     bool
	logLevel    string
	showVersion bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plot-spectrum",
	Short: "Interactive signal composition and spectrum visualizer",
	Long: `Plot Spectrum builds a composite signal from sinusoidal components and
shows both the time-domain waveform and its magnitude spectrum.

Commands inside the session:
  freq <n> <hz>   set frequency of tone n
  amp <n> <x>     set amplitude of tone n
  add <hz> <amp>  append a tone
  del <n>         remove tone n
  dc <x>          set the DC offset

Tones at or above the Nyquist limit are excluded from synthesis with a
warning rather than aliased.

Example usage:
  plot-spectrum
  plot-spectrum --dc 0.5 --sample-rate 2000`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("Plot Spectrum"))
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
	rootCmd.Flags().Float64Var(&dcOffset, "dc", 0, "initial DC offset")
	rootCmd.Flags().Float64Var(&sampleRate, "sample-rate", 1000, "sample rate (Sps)")
	rootCmd.Flags().Float64VarP(&duration, "duration", "d", 1.0, "signal duration in seconds")
	rootCmd.Flags().BoolVar(&braille, "braille", false, "render waveforms with braille dot cells")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("spectrum.dc_offset", rootCmd.Flags().Lookup("dc"))
	viper.BindPFlag("spectrum.sample_rate", rootCmd.Flags().Lookup("sample-rate"))
	viper.BindPFlag("spectrum.duration", rootCmd.Flags().Lookup("duration"))
	viper.BindPFlag("render.braille", rootCmd.Flags().Lookup("braille"))
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

	session, err := ui.NewSpectrumSession(cfg)
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
