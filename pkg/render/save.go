package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Figure dimensions match the originals' 10x4in matplotlib figures
const (
	figWidth  = 10 * vg.Inch
	figHeight = 4 * vg.Inch
	figDPI    = 140
)

// SavePNG rasterizes the chart to a PNG file
func (c *Chart) SavePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	canvas := vgimg.NewWith(vgimg.UseWH(figWidth, figHeight), vgimg.UseDPI(figDPI))
	c.p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create PNG %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing PNG %s: %w", path, err)
	}
	return f.Close()
}

// SavePDF writes one or more charts to a paginated PDF, one chart per page
func SavePDF(path string, charts ...*Chart) error {
	if len(charts) == 0 {
		return fmt.Errorf("no charts to write to %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	canvas := vgpdf.New(figWidth, figHeight)
	for i, c := range charts {
		if i > 0 {
			canvas.NextPage()
		}
		c.p.Draw(draw.New(canvas))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create PDF %s: %w", path, err)
	}
	defer f.Close()

	if _, err := canvas.WriteTo(f); err != nil {
		return fmt.Errorf("writing PDF %s: %w", path, err)
	}
	return f.Close()
}
