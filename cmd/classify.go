package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phanxgames/flurry"
	"github.com/phanxgames/flurry/internal/observability"
	"github.com/spf13/cobra"
)

// classifyReport is the JSON result of the classify command.
type classifyReport struct {
	Matched bool        `json:"matched"`
	Reason  string      `json:"reason"`
	Points  int         `json:"points"`
	Bounds  flurry.Rect `json:"bounds"`
}

func newClassifyCmd() *cobra.Command {
	var preset string

	classifyCmd := &cobra.Command{
		Use:   "classify [points.json]",
		Short: "Classify a stroke as a heart or report why it is not one",
		Long: `Classifies a pointer stroke. The stroke is either a built-in preset
(--preset ` + strings.Join(flurry.StrokePresetNames, ", ") + `) or a JSON file holding an array
of [x, y] pixel coordinates with Y pointing down.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			var pts []flurry.Vec2
			switch {
			case preset != "" && len(args) > 0:
				return fmt.Errorf("use either --preset or a points file, not both")
			case preset != "":
				p, ok := flurry.StrokePreset(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q", preset)
				}
				pts = p
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read points: %w", err)
				}
				if pts, err = parsePoints(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("need --preset or a points file")
			}
			return runClassify(a, pts, cmd.OutOrStdout())
		},
	}
	classifyCmd.Flags().StringVar(&preset, "preset", "", "classify a built-in stroke")
	return classifyCmd
}

func parsePoints(data []byte) ([]flurry.Vec2, error) {
	var raw [][2]float64
	if err := outJSON.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse points: %w", err)
	}
	pts := make([]flurry.Vec2, len(raw))
	for i, p := range raw {
		pts[i] = flurry.Vec2{X: p[0], Y: p[1]}
	}
	return pts, nil
}

func runClassify(a *app, pts []flurry.Vec2, out io.Writer) error {
	rec := flurry.NewStrokeRecorder(observability.NewEventLogger(a.log), a.log)
	res := rec.Classify(pts)
	enc := outJSON.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(classifyReport{
		Matched: res.Matched,
		Reason:  res.Reason.String(),
		Points:  res.Points,
		Bounds:  res.Bounds,
	})
}
