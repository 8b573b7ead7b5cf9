package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tremolo/dsp/window"
	"github.com/cwbudde/algo-tremolo/internal/wavio"
	"github.com/cwbudde/algo-tremolo/measure/modrate"
)

var (
	analyzeInput    string
	analyzeMinHz    float64
	analyzeMaxHz    float64
	analyzeUnipolar bool
	analyzeWindow   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure the tremolo rate of a WAV file",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

func init() {
	def := modrate.DefaultConfig()
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeInput, "input", "i", "", "WAV file to analyse")
	f.Float64Var(&analyzeMinHz, "min-hz", def.MinHz, "lowest envelope frequency searched")
	f.Float64Var(&analyzeMaxHz, "max-hz", def.MaxHz, "highest envelope frequency searched")
	f.BoolVar(&analyzeUnipolar, "unipolar", false, "gain does not cross zero (envelope rate equals LFO rate)")
	f.StringVar(&analyzeWindow, "window", def.Window.String(), "envelope window: rectangular, hann, hamming, blackman")
	_ = analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	w, err := window.ParseType(analyzeWindow)
	if err != nil {
		return err
	}
	a, err := wavio.Read(analyzeInput)
	if err != nil {
		return err
	}
	cfg := modrate.DefaultConfig()
	cfg.Window = w
	cfg.SampleRate = float64(a.SampleRate)
	cfg.MinHz = analyzeMinHz
	cfg.MaxHz = analyzeMaxHz
	cfg.Bipolar = !analyzeUnipolar

	res, err := modrate.Analyze(a.Left, a.Right, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", analyzeInput, err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tDuration [s]\tWindow\tEnvelope [Hz]\tRate [Hz]\tBPM\tDepth\tFFT\n")
	fmt.Fprintf(tw, "----\t------------\t------\t-------------\t---------\t---\t-----\t---\n")
	fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.3f\t%.3f\t%.1f\t%.3f\t%d\n",
		analyzeInput, a.Duration(), w, res.EnvelopeHz, res.RateHz, res.BPM, res.Magnitude, res.FFTSize)
	return tw.Flush()
}
