package neuro_controllers

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderController writes heatmap and time-series PNGs for finished
// sessions. Rendering never affects computed results, so every failure is
// logged and swallowed instead of propagated.
type RenderController struct {
	OutputDir string
}

func NewRenderController(outputDir string) (*RenderController, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	return &RenderController{OutputDir: outputDir}, nil
}

// gridXYZ adapts a row-major matrix to the plotter heatmap interface.
type gridXYZ struct {
	data [][]float64
}

func (g gridXYZ) Dims() (c, r int) {
	if len(g.data) == 0 {
		return 0, 0
	}
	return len(g.data[0]), len(g.data)
}

func (g gridXYZ) Z(c, r int) float64 { return g.data[r][c] }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }

// RenderGrid writes a labeled heatmap of the matrix.
func (rc *RenderController) RenderGrid(matrix [][]float64, title string) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		log.Printf("Skipping empty grid render: %s", title)
		return
	}
	p := plot.New()
	p.Title.Text = title
	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(gridXYZ{data: matrix}, pal)
	p.Add(hm)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, rc.plotPath(title)); err != nil {
		log.Printf("Failed to render grid %q: %v", title, err)
	}
}

// RenderSeries writes a labeled line plot of index-aligned x and y values.
func (rc *RenderController) RenderSeries(xs, ys []float64, title string) {
	if len(xs) != len(ys) || len(xs) == 0 {
		log.Printf("Skipping series render %q: %d x values vs %d y values", title, len(xs), len(ys))
		return
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time"
	p.Y.Label.Text = "value"
	line, err := plotter.NewLine(pts)
	if err != nil {
		log.Printf("Failed to build line for %q: %v", title, err)
		return
	}
	p.Add(line)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, rc.plotPath(title)); err != nil {
		log.Printf("Failed to render series %q: %v", title, err)
	}
}

func (rc *RenderController) plotPath(title string) string {
	slug := strings.ToLower(strings.ReplaceAll(title, " ", "_"))
	return filepath.Join(rc.OutputDir, slug+".png")
}
