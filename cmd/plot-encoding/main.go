// Plot Encoding - interactive line-encoding explorer
// This program renders a bit pattern under NRZ-L, NRZ-I, AMI, Manchester
// or Differential Manchester encoding and redraws on every parameter change.
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
	cfgFile     string // configuration file path
	bitPattern  string // initial bit pattern
	scheme      string // initial encoding scheme
	bitPeriod   float64
	braille     bool
	logLevel    string
	showVersion bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plot-encoding",
	Short: "Interactive line-encoding visualizer",
	Long: `Plot Encoding renders a binary pattern as a line-coded waveform in the
terminal and redraws it whenever you change a parameter.

Commands inside the session:
  bits <pattern>   set the bit pattern
  scheme <name>    NRZ-L, NRZ-I, AMI, Manchester, Differential Manchester
  period <secs>    set the bit period

Example usage:
  plot-encoding
  plot-encoding --bits 1101 --scheme manchester
  plot-encoding --braille`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("Plot Encoding"))
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
	rootCmd.Flags().StringVarP(&bitPattern, "bits", "b", "10110010", "initial bit pattern")
	rootCmd.Flags().StringVarP(&scheme, "scheme", "s", "NRZ-L", "initial encoding scheme")
	rootCmd.Flags().Float64VarP(&bitPeriod, "period", "p", 1.0, "bit period in seconds")
	rootCmd.Flags().BoolVar(&braille, "braille", false, "render waveforms with braille dot cells")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("encoding.bit_pattern", rootCmd.Flags().Lookup("bits"))
	viper.BindPFlag("encoding.scheme", rootCmd.Flags().Lookup("scheme"))
	viper.BindPFlag("encoding.bit_period", rootCmd.Flags().Lookup("period"))
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

	session, err := ui.NewEncodingSession(cfg)
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
