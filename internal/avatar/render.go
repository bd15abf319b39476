// Package avatar draws a simple silhouette of a client wearing a garment.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/sizing-assistant/internal/types"
)

const (
	canvasWidth  = 400
	canvasHeight = 600

	referenceHeightCM = 175.0
	maxHeightRatio    = 1.2

	headTop    = 60
	headRadius = 25
	armWidth   = 15
	sleeveW    = 25
	sleeveH    = 80
	border     = 2

	infoLineHeight = 16
	infoMargin     = 10
)

// Centimeters to pixels for body widths.
const widthScale = float64(canvasWidth) / 120 * 0.6

// figure holds the silhouette geometry in pixels.
type figure struct {
	centerX     int
	torsoTop    int
	torsoHeight int
	legHeight   int
	bustWidth   int
	waistWidth  int
	hipsWidth   int
}

func newFigure(client *types.Client) figure {
	ratio := float64(client.HeightCM) / referenceHeightCM
	if ratio > maxHeightRatio {
		ratio = maxHeightRatio
	}
	avatarHeight := float64(canvasHeight) * 0.8 * ratio
	body := client.BodyMeasurements

	return figure{
		centerX:     canvasWidth / 2,
		torsoTop:    headTop + headRadius*2 + 10,
		torsoHeight: int(avatarHeight * 0.4),
		legHeight:   int(avatarHeight * 0.5),
		bustWidth:   int(body.BustCM * widthScale),
		waistWidth:  int(body.WaistCM * widthScale),
		hipsWidth:   int(body.HipsCM * widthScale),
	}
}

// Render draws client wearing product in the given size and named color, with a caption
// block at the bottom, and returns PNG bytes.
func Render(client *types.Client, product *types.Product, size types.Size, colorName string) ([]byte, error) {
	if client == nil || product == nil {
		return nil, fmt.Errorf("avatar needs both a client and a product")
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	fillRect(img, img.Bounds(), background)

	f := newFigure(client)
	drawBody(img, f)
	drawGarment(img, f, product.Fit, garmentColor(colorName))
	drawInfo(img, infoLines(client, product, size, colorName))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBody(img *image.RGBA, f figure) {
	cx := f.centerX
	fillEllipse(img, cx, headTop+headRadius, headRadius, headRadius, skin)

	// Torso narrows from bust to waist, then widens to hips.
	for dy := 0; dy < f.torsoHeight; dy++ {
		t := float64(dy) / float64(f.torsoHeight)
		var half float64
		if t < 0.5 {
			half = lerp(float64(f.bustWidth), float64(f.waistWidth), t*2) / 2
		} else {
			half = lerp(float64(f.waistWidth), float64(f.hipsWidth), (t-0.5)*2) / 2
		}
		y := f.torsoTop + dy
		fillRect(img, image.Rect(cx-int(half), y, cx+int(half), y+1), skin)
	}

	armTop := f.torsoTop + 20
	armBottom := armTop + int(float64(f.torsoHeight)*0.8)
	halfBust := f.bustWidth / 2
	fillRect(img, image.Rect(cx-halfBust-armWidth, armTop, cx-halfBust, armBottom), skin)
	fillRect(img, image.Rect(cx+halfBust, armTop, cx+halfBust+armWidth, armBottom), skin)

	legTop := f.torsoTop + f.torsoHeight
	legWidth := f.hipsWidth / 3
	fillRect(img, image.Rect(cx-legWidth, legTop, cx-5, legTop+f.legHeight), skin)
	fillRect(img, image.Rect(cx+5, legTop, cx+legWidth, legTop+f.legHeight), skin)
}

func drawGarment(img *image.RGBA, f figure, fit types.FitType, c color.RGBA) {
	half := int(float64(f.bustWidth)*fitMultiplier(fit)) / 2
	top := f.torsoTop
	bottom := top + int(float64(f.torsoHeight)*0.9)
	cx := f.centerX

	outlined(img, image.Rect(cx-half, top, cx+half, bottom), c)
	outlined(img, image.Rect(cx-half-sleeveW, top+10, cx-half, top+10+sleeveH), c)
	outlined(img, image.Rect(cx+half, top+10, cx+half+sleeveW, top+10+sleeveH), c)
}

func infoLines(client *types.Client, product *types.Product, size types.Size, colorName string) []string {
	return []string{
		"Cliente: " + client.Name,
		"Producto: " + product.Name,
		"Talla: " + string(size),
		"Color: " + cases.Title(language.Spanish).String(colorName),
		"Ajuste: " + string(product.Fit),
		"Material: " + product.Fabric,
	}
}

// infoTop is the first pixel row of a caption block with n lines.
func infoTop(n int) int {
	return canvasHeight - n*infoLineHeight - infoMargin
}

// drawInfo writes lines bottom-left in the 7x13 bitmap face.
func drawInfo(img *image.RGBA, lines []string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(outline),
		Face: basicfont.Face7x13,
	}
	top := infoTop(len(lines))
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	for i, line := range lines {
		d.Dot = fixed.P(infoMargin, top+i*infoLineHeight+ascent)
		d.DrawString(line)
	}
}

func outlined(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	fillRect(img, r.Inset(-border), outline)
	fillRect(img, r, c)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			if float64(x*x)/float64(rx*rx)+float64(y*y)/float64(ry*ry) <= 1 {
				img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
