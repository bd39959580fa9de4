// Package config provides configuration structures and defaults for the
// sigstudio tools
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Encoding EncodingConfig `yaml:"encoding" mapstructure:"encoding"` // line-encoding explorer settings
	Spectrum SpectrumConfig `yaml:"spectrum" mapstructure:"spectrum"` // spectrum explorer settings
	QAM      QAMConfig      `yaml:"qam" mapstructure:"qam"`           // QAM modulator settings
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`     // terminal plot settings
	RIP      RIPConfig      `yaml:"rip" mapstructure:"rip"`           // RIP simulation settings
	ARQ      ARQConfig      `yaml:"arq" mapstructure:"arq"`           // Stop-and-Wait simulation settings
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`   // logging configuration
}

// EncodingConfig contains the line-encoding explorer parameters
type EncodingConfig struct {
	BitPattern string  `yaml:"bit_pattern" mapstructure:"bit_pattern"` // initial bit pattern
	Scheme     string  `yaml:"scheme" mapstructure:"scheme"`           // initial encoding scheme name
	BitPeriod  float64 `yaml:"bit_period" mapstructure:"bit_period"`   // bit duration in seconds
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"` // samples per second
}

// SpectrumConfig contains the composite-signal explorer parameters
type SpectrumConfig struct {
	Frequencies []float64 `yaml:"frequencies" mapstructure:"frequencies"` // initial tone frequencies in Hz
	Amplitudes  []float64 `yaml:"amplitudes" mapstructure:"amplitudes"`   // initial tone amplitudes
	DCOffset    float64   `yaml:"dc_offset" mapstructure:"dc_offset"`     // DC component
	SampleRate  float64   `yaml:"sample_rate" mapstructure:"sample_rate"` // samples per second
	Duration    float64   `yaml:"duration" mapstructure:"duration"`       // signal duration in seconds
}

// QAMConfig contains the QAM modulator parameters
type QAMConfig struct {
	BitPattern  string  `yaml:"bit_pattern" mapstructure:"bit_pattern"`   // initial bit pattern
	Order       int     `yaml:"order" mapstructure:"order"`               // initial modulation order
	CarrierFreq float64 `yaml:"carrier_freq" mapstructure:"carrier_freq"` // carrier frequency in Hz
	SymbolRate  float64 `yaml:"symbol_rate" mapstructure:"symbol_rate"`   // symbols per second
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`   // samples per second
}

// RenderConfig contains terminal plot dimensions
type RenderConfig struct {
	Width   int  `yaml:"width" mapstructure:"width"`     // plot area columns
	Height  int  `yaml:"height" mapstructure:"height"`   // plot area rows
	Braille bool `yaml:"braille" mapstructure:"braille"` // braille dot-cell waveforms
}

// RIPConfig contains the distance-vector simulation parameters
type RIPConfig struct {
	Source        string        `yaml:"source" mapstructure:"source"`                 // path source router
	Destination   string        `yaml:"destination" mapstructure:"destination"`       // path destination router
	MaxIterations int           `yaml:"max_iterations" mapstructure:"max_iterations"` // exchange rounds before giving up
	StepDelay     time.Duration `yaml:"step_delay" mapstructure:"step_delay"`         // pause between displayed rounds
}

// ARQConfig contains the Stop-and-Wait simulation parameters
type ARQConfig struct {
	PropagationDelay float64 `yaml:"propagation_delay" mapstructure:"propagation_delay"` // one-way propagation delay (s)
	TransmissionTime float64 `yaml:"transmission_time" mapstructure:"transmission_time"` // frame transmission time (s)
	ProcessingTime   float64 `yaml:"processing_time" mapstructure:"processing_time"`     // receiver processing time (s)
	Frames           int     `yaml:"frames" mapstructure:"frames"`                       // frames to deliver
	ErrorProbability float64 `yaml:"error_probability" mapstructure:"error_probability"` // frame corruption probability
	Seed             int64   `yaml:"seed" mapstructure:"seed"`                           // RNG seed for reproducible runs
}

// LoggingConfig contains logging configuration parameters
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // log level (debug, info, warn, error)
	File  string `yaml:"file" mapstructure:"file"`   // optional log file path
}

// DefaultConfig returns a configuration with sensible default values.
// The signal defaults mirror the classic textbook demos: 1 kSps sampling,
// one-second bit periods, a 10 Hz QAM carrier at 2 symbols per second.
func DefaultConfig() *Config {
	return &Config{
		Encoding: EncodingConfig{
			BitPattern: "10110010",
			Scheme:     "NRZ-L",
			BitPeriod:  1.0,
			SampleRate: 1000,
		},
		Spectrum: SpectrumConfig{
			Frequencies: []float64{1, 3, 5},
			Amplitudes:  []float64{1, 0.5, 0.3},
			DCOffset:    0,
			SampleRate:  1000,
			Duration:    1.0,
		},
		QAM: QAMConfig{
			BitPattern:  "0010111001",
			Order:       4,
			CarrierFreq: 10,
			SymbolRate:  2,
			SampleRate:  1000,
		},
		Render: RenderConfig{
			Width:   72,
			Height:  16,
			Braille: false,
		},
		RIP: RIPConfig{
			Source:        "A",
			Destination:   "E",
			MaxIterations: 10,
			StepDelay:     0,
		},
		ARQ: ARQConfig{
			PropagationDelay: 5.0,
			TransmissionTime: 1.0,
			ProcessingTime:   0.5,
			Frames:           10,
			ErrorProbability: 0.1,
			Seed:             1,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}
