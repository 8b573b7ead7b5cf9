package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tremolo/dsp/tempo"
	"github.com/cwbudde/algo-tremolo/internal/audioout"
	"github.com/cwbudde/algo-tremolo/internal/wavio"
	"github.com/cwbudde/algo-tremolo/midiin"
	"github.com/cwbudde/algo-tremolo/pedal"
)

const (
	carrierHz        = 220
	carrierAmplitude = 0.5
	statusInterval   = 250 * time.Millisecond
)

var (
	playInput    string
	playMIDIPort string
	playNoMIDI   bool
	playList     bool
	playLatency  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the pedal live on the default audio output",
	Long: `Play loops a WAV file (or a 220 Hz sine when -i is omitted) through the
pedal in real time. Press Enter to tap the tempo; type q and Enter to quit.
MIDI timing clock from the selected input port sets the tempo as well.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	f := playCmd.Flags()
	f.StringVarP(&playInput, "input", "i", "", "WAV file to loop (default: generated sine)")
	f.StringVar(&playMIDIPort, "midi-port", "", "MIDI input port name prefix (overrides config)")
	f.BoolVar(&playNoMIDI, "no-midi", false, "do not open a MIDI input")
	f.BoolVar(&playList, "list-ports", false, "list MIDI input ports and exit")
	f.DurationVar(&playLatency, "latency", audioout.DefaultBufferSize, "audio device buffer duration")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if playList {
		return listPorts(cmd.OutOrStdout())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}
	if playMIDIPort != "" {
		cfg.MIDI.Port = playMIDIPort
	}
	if playNoMIDI {
		cfg.MIDI.Disabled = true
	}

	var input audioout.Input
	if playInput != "" {
		a, err := wavio.Read(playInput)
		if err != nil {
			return err
		}
		cfg.Audio.SampleRate = float64(a.SampleRate)
		if input, err = audioout.NewLoop(a.Left, a.Right); err != nil {
			return err
		}
	} else {
		if input, err = audioout.NewTone(cfg.Audio.SampleRate, carrierHz, carrierAmplitude); err != nil {
			return err
		}
	}

	pcfg, err := cfg.Pedal()
	if err != nil {
		return err
	}
	var opts []pedal.Option
	var trace chan tempo.Estimate
	if cfg.Log.Trace {
		trace = make(chan tempo.Estimate, 64)
		opts = append(opts, pedal.WithTrace(trace))
	}
	p, err := pedal.New(pcfg, opts...)
	if err != nil {
		return err
	}

	var button pedal.Button
	stream, err := audioout.NewStream(p, input, &button, pcfg.BlockSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := playStatus{proc: p, stream: stream}
	if !cfg.MIDI.Disabled {
		l, err := midiin.Open(cfg.MIDI.Port, p)
		switch {
		case errors.Is(err, midiin.ErrNoDriver), errors.Is(err, midiin.ErrNoPort):
			logger.Warn("MIDI input unavailable, tap tempo only", "err", err)
		case err != nil:
			return err
		default:
			defer l.Close()
			status.midi = l
			logger.Info("MIDI input open", "port", l.Name())
		}
	}

	dev, err := audioout.Open(int(pcfg.SampleRate), stream, playLatency)
	if err != nil {
		return err
	}
	defer dev.Close()

	logger.Info("playing",
		"sample_rate", pcfg.SampleRate,
		"block_size", pcfg.BlockSize,
		"lfo", describeLFO(pcfg.Waveform, p.Frequency()),
	)
	fmt.Fprintln(cmd.OutOrStdout(), "Enter = tap, q + Enter = quit")

	quit := make(chan struct{})
	go readTaps(os.Stdin, &button, quit)

	err = monitor(ctx, logger, status, dev, trace, quit)
	logger.Info("stopped", status.attrs()...)
	return err
}

// readTaps presses button for every line on r. A line starting with q, or
// EOF, closes quit.
func readTaps(r io.Reader, button *pedal.Button, quit chan<- struct{}) {
	defer close(quit)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.HasPrefix(strings.TrimSpace(sc.Text()), "q") {
			return
		}
		button.Press()
	}
}

// playStatus collects the counters reported while playing.
type playStatus struct {
	proc   *pedal.Processor
	stream *audioout.Stream
	midi   *midiin.Listener
}

func (s playStatus) attrs() []any {
	attrs := []any{
		"bpm", s.proc.BPM(),
		"lfo_hz", s.proc.Frequency(),
		"blocks", s.stream.Blocks(),
		"dropped", s.proc.Dropped(),
	}
	if s.midi != nil {
		attrs = append(attrs, "midi_received", s.midi.Received(), "midi_accepted", s.midi.Accepted())
	}
	return attrs
}

func monitor(ctx context.Context, logger *slog.Logger, status playStatus, dev *audioout.Device, trace <-chan tempo.Estimate, quit <-chan struct{}) error {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	p := status.proc
	lastBPM := p.BPM()
	var lastDropped uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case est := <-trace:
			logEstimate(logger, est)
		case <-ticker.C:
			if err := dev.Err(); err != nil {
				return fmt.Errorf("playback: %w", err)
			}
			if bpm := p.BPM(); bpm != lastBPM {
				lastBPM = bpm
				logger.Info("tempo", status.attrs()...)
			}
			if d := p.Dropped(); d != lastDropped {
				logger.Warn("clock pulses dropped", "total", d)
				lastDropped = d
			}
		}
	}
}

func listPorts(w io.Writer) error {
	ports, err := midiin.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "no MIDI input ports")
		return nil
	}
	for _, name := range ports {
		fmt.Fprintln(w, name)
	}
	return nil
}
