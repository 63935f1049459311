package cmd

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/phanxgames/flurry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const scriptDT = 1.0 / 60

// eventCounter tallies events by type name.
type eventCounter map[string]int

func (c eventCounter) EmitEvent(ev flurry.Event) {
	c[ev.Type.String()]++
}

// scriptReport is the summary printed after a headless run.
type scriptReport struct {
	RunID         string         `json:"run_id"`
	Frames        int            `json:"frames"`
	Completed     bool           `json:"completed"`
	Shape         string         `json:"shape"`
	MorphProgress float64        `json:"morph_progress"`
	Openness      float64        `json:"openness"`
	Color         string         `json:"color"`
	Particles     int            `json:"particles"`
	LastStroke    string         `json:"last_stroke,omitempty"`
	Events        map[string]int `json:"events"`
}

func newScriptCmd() *cobra.Command {
	var maxFrames, tail int

	scriptCmd := &cobra.Command{
		Use:   "script <file.json>",
		Short: "Run a choreography script headless and print a summary",
		Long: `Loads a JSON script of shape, color, signal, stroke and wait steps, runs it
against the engine at 60 steps per second without opening a window, and
prints a JSON summary of the final state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			return runScript(a, data, maxFrames, tail, cmd.OutOrStdout())
		},
	}
	addEngineFlags(scriptCmd)
	scriptCmd.Flags().IntVar(&maxFrames, "max-frames", 3600, "stop after this many frames even if the script has not finished")
	scriptCmd.Flags().IntVar(&tail, "tail", 0, "extra frames to run after the last step")
	return scriptCmd
}

func runScript(a *app, data []byte, maxFrames, tail int, out io.Writer) error {
	script, err := flurry.LoadScript(data)
	if err != nil {
		return err
	}
	counts := eventCounter{}
	eng, events, err := a.newEngine(counts)
	if err != nil {
		return err
	}
	rec := flurry.NewStrokeRecorder(events, a.log)

	frames := 0
	for ; frames < maxFrames && !script.Done(); frames++ {
		eng.Step(scriptDT, script.Step(eng, rec))
	}
	completed := script.Done()
	for i := 0; i < tail && frames < maxFrames; i++ {
		eng.Step(scriptDT, script.Step(eng, rec))
		frames++
	}
	if !completed {
		a.log.Warn("script stopped before finishing", zap.Int("frames", frames), zap.String("step", script.Label()))
	}

	f := eng.Frame()
	report := scriptReport{
		RunID:         a.runID,
		Frames:        frames,
		Completed:     completed,
		Shape:         f.Shape.String(),
		MorphProgress: f.MorphProgress,
		Openness:      f.Openness,
		Color:         f.Color.Hex(),
		Particles:     eng.Count(),
		Events:        counts,
	}
	if last := rec.Last(); last.Points > 0 {
		report.LastStroke = describeStroke(last)
	}
	enc := outJSON.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func describeStroke(r flurry.StrokeResult) string {
	if r.Matched {
		return "heart"
	}
	return "rejected: " + r.Reason.String()
}
