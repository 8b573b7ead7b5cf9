// Command tremolo runs the tap-tempo tremolo offline or live.
//
// Usage:
//
//	tremolo render -i in.wav -o out.wav [--taps 0,500,1000] [--midi-bpm 120]
//	tremolo play [-i loop.wav] [--midi-port prefix]
//	tremolo analyze -i out.wav
//
// Examples:
//
//	tremolo render -i guitar.wav -o wet.wav --taps 0,500,1000 --analyze
//	tremolo render -i guitar.wav -o wet.wav --midi-bpm 96 --midi-from 2000
//	tremolo play --midi-port "Digitakt"
//	tremolo --config pedal.yaml --log-level debug play
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tremolo/dsp/osc"
	"github.com/cwbudde/algo-tremolo/dsp/tempo"
	"github.com/cwbudde/algo-tremolo/internal/config"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	traceTempo bool
	waveform   string
	blockSize  int
)

var rootCmd = &cobra.Command{
	Use:   "tremolo",
	Short: "Tempo-synchronised tremolo driven by tap tempo or MIDI clock",
	Long: `tremolo multiplies a stereo signal by a low-frequency oscillator whose
rate follows a tap-tempo button or incoming MIDI timing clock (24 PPQN).
Accepted tempos are 30-240 BPM unless the configuration says otherwise.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&traceTempo, "trace", false, "log every tempo estimate (msec/diff/BPM)")
	pf.StringVar(&waveform, "waveform", "", "LFO waveform: sine, triangle, saw, ramp, square (overrides config)")
	pf.IntVar(&blockSize, "block-size", 0, "audio block size in frames (overrides config)")

	rootCmd.AddCommand(renderCmd, playCmd, analyzeCmd, configCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// loadConfig reads --config (if any) and applies the persistent flag
// overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if traceTempo {
		cfg.Log.Trace = true
	}
	if waveform != "" {
		cfg.LFO.Waveform = waveform
	}
	if blockSize > 0 {
		cfg.Audio.BlockSize = blockSize
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the text logger. Tracing needs debug records, so it
// lowers the level when set.
func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Log.Trace && lvl > slog.LevelDebug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func logEstimate(logger *slog.Logger, est tempo.Estimate) {
	logger.Debug("tempo",
		"source", est.Source.String(),
		"msec", est.NowMs,
		"diff", est.DiffMs,
		"bpm", est.BPM,
		"accepted", est.Accepted,
	)
}

// flushTrace logs every estimate currently buffered in ch without waiting.
func flushTrace(logger *slog.Logger, ch <-chan tempo.Estimate) {
	for {
		select {
		case est := <-ch:
			logEstimate(logger, est)
		default:
			return
		}
	}
}

func describeLFO(w osc.Waveform, hz float64) string {
	return fmt.Sprintf("%s %.3f Hz", w, hz)
}
