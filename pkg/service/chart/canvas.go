package chart

import (
	"io"
	"strconv"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// heatmap intensity runs from white to this color
var heatColor = drawing.Color{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}

type canvas struct {
	r      gochart.Renderer
	width  int
	height int
}

func newCanvas(c *config) (*canvas, error) {
	r, err := gochart.PNG(c.width, c.height)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create renderer")
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load font")
	}
	r.SetDPI(gochart.DefaultDPI)
	r.SetFont(font)

	cv := &canvas{r: r, width: c.width, height: c.height}
	cv.rect(0, 0, c.width, c.height, drawing.ColorWhite)
	return cv, nil
}

func (x *canvas) rect(left, top, right, bottom int, fill drawing.Color) {
	x.r.SetFillColor(fill)
	x.r.SetStrokeColor(fill)
	x.r.SetStrokeWidth(0)
	x.r.MoveTo(left, top)
	x.r.LineTo(right, top)
	x.r.LineTo(right, bottom)
	x.r.LineTo(left, bottom)
	x.r.LineTo(left, top)
	x.r.Close()
	x.r.Fill()
}

func (x *canvas) text(body string, size float64, col drawing.Color, cx, y int) {
	x.r.SetFontSize(size)
	x.r.SetFontColor(col)
	box := x.r.MeasureText(body)
	x.r.Text(body, cx-box.Width()/2, y)
}

func (x *canvas) save(w io.Writer) error {
	if err := x.r.Save(w); err != nil {
		return goerr.Wrap(err, "failed to encode png")
	}
	return nil
}

func renderPlaceholder(w io.Writer, title string, c *config) error {
	cv, err := newCanvas(c)
	if err != nil {
		return err
	}
	cv.text(title, 14, drawing.ColorBlack, c.width/2, c.height/2)
	return cv.save(w)
}

// renderHeatmap draws a day by hour grid, Monday on top
func renderHeatmap(w io.Writer, cfg *model.ChartConfig, c *config) error {
	if len(cfg.Series) == 0 {
		return renderPlaceholder(w, cfg.Title, c)
	}

	rows := cfg.Series

	maxCount := 0.0
	for _, s := range rows {
		for _, p := range s.Data {
			if p.Value > maxCount {
				maxCount = p.Value
			}
		}
	}

	cv, err := newCanvas(c)
	if err != nil {
		return err
	}

	const (
		top    = 48
		left   = 96
		right  = 16
		bottom = 40
	)
	cellW := (c.width - left - right) / 24
	cellH := (c.height - top - bottom) / len(rows)
	if cellW < 1 || cellH < 1 {
		return goerr.New("image too small for heatmap", goerr.V("width", c.width), goerr.V("height", c.height))
	}

	cv.text(cfg.Title, 14, drawing.ColorBlack, c.width/2, 24)

	for i, s := range rows {
		y := top + i*cellH
		cv.r.SetFontSize(10)
		cv.r.SetFontColor(drawing.ColorBlack)
		cv.r.Text(s.Name, 8, y+cellH/2+4)

		for _, p := range s.Data {
			hour, err := strconv.Atoi(p.Label)
			if err != nil || hour < 0 || hour > 23 {
				continue
			}
			x := left + hour*cellW
			cv.rect(x, y, x+cellW-1, y+cellH-1, intensity(p.Value, maxCount))
		}
	}

	for hour := 0; hour < 24; hour += 3 {
		cv.text(strconv.Itoa(hour), 10, drawing.ColorBlack, left+hour*cellW+cellW/2, top+len(rows)*cellH+16)
	}
	cv.text(cfg.XAxis, 10, drawing.ColorBlack, left+12*cellW, c.height-8)

	return cv.save(w)
}

func intensity(value, maxValue float64) drawing.Color {
	if maxValue <= 0 {
		return drawing.ColorWhite
	}
	ratio := value / maxValue
	mix := func(from, to uint8) uint8 {
		return uint8(float64(from) + (float64(to)-float64(from))*ratio)
	}
	return drawing.Color{
		R: mix(0xff, heatColor.R),
		G: mix(0xff, heatColor.G),
		B: mix(0xff, heatColor.B),
		A: 0xff,
	}
}
