package treemap

import "fmt"

// Surface is the canvas-like draw target the renderer paints onto. The
// real surface lives client-side; tests record calls. FillText centers
// the text horizontally on x with the vertical midline on y, matching
// canvas center/middle alignment.
type Surface interface {
	FillRect(r Rect, color string)
	StrokeRect(r Rect, color string, lineWidth int)
	SetFont(font string)
	MeasureText(text string) int
	FillText(text string, x, y int)
}

const (
	borderColor = "#ffffff"
	fontLarge   = "bold 14px Arial"
	fontSmall   = "bold 12px Arial"
	lineHeight  = 20

	// Label threshold bands, in pixels.
	minLabelW = 80
	minLabelH = 60
	multiW    = 120
	multiH    = 80
	pctOnlyW  = 40
	pctOnlyH  = 30

	// Horizontal padding kept clear of text inside a cell.
	textPad = 10
)

// Renderer draws laid-out treemap cells onto a Surface.
type Renderer struct {
	Surface Surface

	// FormatValue renders a cell's value for display; nil falls back to
	// the default EUR display formatter.
	FormatValue func(value float64) string
}

// NewRenderer creates a Renderer with the default value formatter.
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{
		Surface:     surface,
		FormatValue: ValueFormatter{}.Format,
	}
}

// Render lays the items out inside a width x height area and draws each
// cell: a filled rectangle, a white border, and the cell label (if its
// rectangle has room for one).
func (rd *Renderer) Render(items []Item, width, height int) {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}

	for _, p := range Layout(items, Rect{0, 0, width, height}) {
		rd.drawCell(p, total)
	}
}

// drawCell paints one placement. The label degrades with available
// space: full multi-line (value, "label • NN%") needs a roomy cell;
// otherwise a single line at the large font, a single line at the small
// font, percentage only, or nothing.
func (rd *Renderer) drawCell(p Placement, total float64) {
	r := p.Rect
	rd.Surface.FillRect(r, p.Item.Color)
	rd.Surface.StrokeRect(r, borderColor, 2)

	pct := fmt.Sprintf("%.0f%%", p.Item.Value/total*100)
	single := fmt.Sprintf("%s • %s", p.Item.Label, pct)
	cx := r.X + r.W/2
	cy := r.Y + r.H/2

	if r.W > minLabelW && r.H > minLabelH {
		if r.W > multiW && r.H > multiH {
			lines := []string{rd.formatValue(p.Item.Value), single}
			rd.Surface.SetFont(fontLarge)
			for i, line := range lines {
				y := cy - (len(lines)-1)*lineHeight/2 + i*lineHeight
				rd.Surface.FillText(line, cx, y)
			}
			return
		}

		rd.Surface.SetFont(fontLarge)
		if rd.Surface.MeasureText(single) < r.W-textPad {
			rd.Surface.FillText(single, cx, cy)
			return
		}

		rd.Surface.SetFont(fontSmall)
		if rd.Surface.MeasureText(single) < r.W-textPad {
			rd.Surface.FillText(single, cx, cy)
		} else if r.W > pctOnlyW && r.H > pctOnlyH {
			rd.Surface.FillText(pct, cx, cy)
		}
		return
	}

	if r.W > pctOnlyW && r.H > pctOnlyH {
		rd.Surface.SetFont(fontSmall)
		rd.Surface.FillText(pct, cx, cy)
	}
}

func (rd *Renderer) formatValue(value float64) string {
	if rd.FormatValue != nil {
		return rd.FormatValue(value)
	}
	return ValueFormatter{}.Format(value)
}
