package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tremolo/dsp/tempo"
	"github.com/cwbudde/algo-tremolo/internal/wavio"
	"github.com/cwbudde/algo-tremolo/measure/modrate"
	"github.com/cwbudde/algo-tremolo/pedal"
)

var (
	renderInput    string
	renderOutput   string
	renderTaps     string
	renderMIDIBPM  float64
	renderMIDIFrom uint32
	renderMIDITo   uint32
	renderAnalyze  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Process a WAV file offline with scripted taps or MIDI clock",
	Long: `Render runs the pedal over a WAV file block by block, with a simulated
millisecond clock that follows the file position. Taps are button presses at
the given millisecond offsets; each becomes a button edge in the block that
contains it (two taps inside one block count once, like a real button).
--midi-bpm synthesises 24 PPQN timing clock between --midi-from and --midi-to.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderInput, "input", "i", "", "input WAV file (mono or stereo)")
	f.StringVarP(&renderOutput, "output", "o", "", "output WAV file")
	f.StringVar(&renderTaps, "taps", "", "comma-separated button press times in ms, e.g. 0,500,1000")
	f.Float64Var(&renderMIDIBPM, "midi-bpm", 0, "synthesise MIDI timing clock at this tempo (0 = off)")
	f.Uint32Var(&renderMIDIFrom, "midi-from", 0, "first MIDI clock pulse time in ms")
	f.Uint32Var(&renderMIDITo, "midi-to", 0, "stop MIDI clock at this time in ms (0 = end of file)")
	f.BoolVar(&renderAnalyze, "analyze", false, "measure the modulation rate of the output")
	_ = renderCmd.MarkFlagRequired("input")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	in, err := wavio.Read(renderInput)
	if err != nil {
		return err
	}
	cfg.Audio.SampleRate = float64(in.SampleRate)
	pcfg, err := cfg.Pedal()
	if err != nil {
		return err
	}

	taps, err := parseTaps(renderTaps)
	if err != nil {
		return err
	}
	var ticks []uint32
	if renderMIDIBPM > 0 {
		to := renderMIDITo
		if to == 0 {
			to = uint32(in.Duration()*1000) + 1
		}
		if ticks, err = clockTimes(renderMIDIBPM, pcfg.PulsesPerBeat, renderMIDIFrom, to); err != nil {
			return err
		}
	}

	clock := &pedal.ManualClock{}
	opts := []pedal.Option{pedal.WithClock(clock)}
	var trace chan tempo.Estimate
	if cfg.Log.Trace {
		trace = make(chan tempo.Estimate, 16)
		opts = append(opts, pedal.WithTrace(trace))
	}
	p, err := pedal.New(pcfg, opts...)
	if err != nil {
		return err
	}

	logger.Info("rendering",
		"input", renderInput,
		"frames", in.Frames(),
		"sample_rate", in.SampleRate,
		"block_size", pcfg.BlockSize,
		"taps", len(taps),
		"clock_pulses", len(ticks),
	)

	out := renderOffline(p, clock, in, newSchedule(taps, ticks), func() {
		if trace != nil {
			flushTrace(logger, trace)
		}
	})
	if err := wavio.Write(renderOutput, out); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "wrote %s (%.2f s)\n", renderOutput, out.Duration())
	fmt.Fprintf(w, "final tempo: %d BPM, LFO %s\n", p.BPM(), describeLFO(pcfg.Waveform, p.Frequency()))
	if d := p.Dropped(); d > 0 {
		logger.Warn("clock pulses dropped", "count", d)
	}

	if renderAnalyze {
		mcfg := modrate.DefaultConfig()
		mcfg.SampleRate = float64(out.SampleRate)
		res, err := modrate.Analyze(out.Left, out.Right, mcfg)
		if err != nil {
			return fmt.Errorf("analyze output: %w", err)
		}
		fmt.Fprintf(w, "measured: %s\n", res)
	}
	return nil
}

// renderOffline feeds in through p one block at a time. Before each block
// clock pulses and taps that fall inside it are delivered: pulses are
// stamped at their own time, and a tap sets the clock to its time before
// the block runs. afterBlock, if non-nil, runs after every block.
func renderOffline(p *pedal.Processor, clock *pedal.ManualClock, in wavio.Audio, sched schedule, afterBlock func()) wavio.Audio {
	pc := p.Config().ProcessorConfig()
	frames := in.Frames()
	out := wavio.Audio{
		SampleRate: in.SampleRate,
		BitDepth:   in.BitDepth,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}

	next := 0
	for start := 0; start < frames; start += pc.BlockSize {
		end := min(start+pc.BlockSize, frames)

		edge := false
		var tapMs uint32
		for next < len(sched) && msToFrame(sched[next].ms, pc.SampleRate) < int64(end) {
			ev := sched[next]
			next++
			switch ev.kind {
			case eventClock:
				clock.Set(ev.ms)
				p.HandleMIDIBytes([]byte{0xF8})
			case eventTap:
				edge = true
				tapMs = ev.ms
			}
		}
		if edge {
			clock.Set(tapMs)
		} else {
			clock.Set(pc.SamplesToMs(int64(start)))
		}

		p.ProcessBlock(
			[2][]float64{out.Left[start:end], out.Right[start:end]},
			[2][]float64{in.Left[start:end], in.Right[start:end]},
			edge,
		)
		if afterBlock != nil {
			afterBlock()
		}
	}
	return out
}

func msToFrame(ms uint32, sampleRate float64) int64 {
	return int64(float64(ms) * sampleRate / 1000)
}
