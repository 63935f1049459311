package cmd

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/phanxgames/flurry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sampleCount is the cloud size used to measure shape extents.
const sampleCount = 2000

func newShapesCmd() *cobra.Command {
	shapesCmd := &cobra.Command{
		Use:   "shapes",
		Short: "List the available shapes and their extents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return listShapes(a.cfg.Engine.Seed, cmd.OutOrStdout())
		},
	}

	var count int
	var seed uint64
	generateCmd := &cobra.Command{
		Use:   "generate <shape>",
		Short: "Print the point cloud of a shape as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			kind, err := flurry.ParseShapeKind(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("generating shape", zap.Stringer("shape", kind), zap.Int("count", count))
			return generateShape(kind, count, seed, cmd.OutOrStdout())
		},
	}
	generateCmd.Flags().IntVarP(&count, "count", "n", 1000, "number of points")
	generateCmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	shapesCmd.AddCommand(generateCmd)
	return shapesCmd
}

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// extents returns the per-axis minimum and maximum of a position buffer.
func extents(pos []float32) (lo, hi [3]float64) {
	for a := range 3 {
		lo[a], hi[a] = math.Inf(1), math.Inf(-1)
	}
	for i := 0; i+2 < len(pos); i += 3 {
		for a := range 3 {
			v := float64(pos[i+a])
			lo[a] = math.Min(lo[a], v)
			hi[a] = math.Max(hi[a], v)
		}
	}
	return lo, hi
}

func listShapes(seed uint64, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSHAPE\tX\tY\tZ")
	for kind := flurry.ShapeKind(0); kind.Valid(); kind++ {
		pos, err := flurry.Generate(kind, sampleCount, seededRand(seed))
		if err != nil {
			return err
		}
		lo, hi := extents(pos)
		fmt.Fprintf(tw, "%d\t%s\t%.2f..%.2f\t%.2f..%.2f\t%.2f..%.2f\n",
			int(kind)+1, kind, lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}
	return tw.Flush()
}

func generateShape(kind flurry.ShapeKind, count int, seed uint64, out io.Writer) error {
	pos, err := flurry.Generate(kind, count, seededRand(seed))
	if err != nil {
		return err
	}
	pts := make([][3]float32, count)
	for i := range pts {
		pts[i] = [3]float32{pos[i*3], pos[i*3+1], pos[i*3+2]}
	}
	return outJSON.NewEncoder(out).Encode(pts)
}
