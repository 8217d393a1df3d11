package layout

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Pt converts a point value to millimeters.
func Pt(v float64) float64 { return v * PtToMm }

// pageSizes 是仅有的两种固定页面尺寸（mm）。
var pageSizes = map[string][2]float64{
	"A4":     {210, 297},
	"LETTER": {215.9, 279.4},
}
