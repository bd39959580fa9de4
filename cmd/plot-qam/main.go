// Plot QAM - interactive quadrature amplitude modulation explorer
// This program maps a bit pattern onto Gray-coded QAM symbols, renders the
// modulated carrier and the constellation diagram, and redraws on every
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
	bitPattern  string
	order       int
	carrierFreq float64
	braille     bool
	logLevel    string
	showVersion bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plot-qam",
	Short: "Interactive QAM modulation visualizer",
	Long: `Plot QAM maps a binary pattern onto quadrature amplitude modulation
symbols and shows the input bits, the modulated waveform, the constellation
diagram and the symbol table.

Commands inside the session:
  bits <pattern>   set the bit pattern
  order <m>        modulation order (4, 16, 64 or 256)
  carrier <hz>     set the carrier frequency

A pattern that does not divide evenly into symbols is zero padded on the
right; the session reports how many pad bits were appended.

Example usage:
  plot-qam
  plot-qam --bits 0010111001 --order 16`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("Plot QAM"))
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
	rootCmd.Flags().StringVarP(&bitPattern, "bits", "b", "0010111001", "initial bit pattern")
	rootCmd.Flags().IntVarP(&order, "order", "m", 4, "modulation order (4, 16, 64, 256)")
	rootCmd.Flags().Float64Var(&carrierFreq, "carrier", 10, "carrier frequency (Hz)")
	rootCmd.Flags().BoolVar(&braille, "braille", false, "render waveforms with braille dot cells")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("qam.bit_pattern", rootCmd.Flags().Lookup("bits"))
	viper.BindPFlag("qam.order", rootCmd.Flags().Lookup("order"))
	viper.BindPFlag("qam.carrier_freq", rootCmd.Flags().Lookup("carrier"))
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

	session, err := ui.NewQAMSession(cfg)
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
