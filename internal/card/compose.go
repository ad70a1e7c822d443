// Package card renders the 500x200 status card. Rendering is a pure
// function of its inputs: identical inputs produce identical PNG bytes.
package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Info is everything the card shows. GameName and Avatar are optional:
// an empty GameName with PresenceInGame renders the generic playing line,
// and a nil Avatar skips the portrait entirely.
type Info struct {
	DisplayName string
	Username    string
	Presence    Presence
	GameName    string
	Avatar      image.Image
}

const (
	cardWidth  = 500
	cardHeight = 200

	avatarX, avatarY     = 20, 40
	avatarSize           = 120
	avatarCX, avatarCY   = 80, 100
	avatarRadius         = 60
	indicatorCX          = 125
	indicatorCY          = 65
	indicatorRadius      = 15
	panelX, panelY       = 160, 30
	panelW, panelH       = 320, 140
	panelCornerRadius    = 15
	textX                = 180
	nameBaseline         = 60
	handleBaseline       = 85
	statusBaseline       = 115
	detailBaseline       = 140
	dotGridStep, dotSize = 20, 10
)

const (
	onlineColor  = "#00ff00"
	offlineColor = "#ff4444"
	handleColor  = "#cccccc"
	playingColor = "#90EE90"
	idleColor    = "#ffff99"
	awayColor    = "#ff9999"
)

var (
	gradientTopLeft     = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	gradientBottomRight = color.NRGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}
)

// Render composes the card and returns it PNG-encoded.
func Render(info Info) ([]byte, error) {
	InitFonts("", slog.Default())

	dc := gg.NewContext(cardWidth, cardHeight)

	// diagonal gradient background
	grad := gg.NewLinearGradient(0, 0, cardWidth, cardHeight)
	grad.AddColorStop(0, gradientTopLeft)
	grad.AddColorStop(1, gradientBottomRight)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, cardWidth, cardHeight)
	dc.Fill()

	// sparse dot texture on alternating grid cells
	dc.SetRGBA(1, 1, 1, 0.1)
	for i := 0; i < cardWidth; i += dotGridStep {
		for j := 0; j < cardHeight; j += dotGridStep {
			if (i+j)%40 == 0 {
				dc.DrawRectangle(float64(i), float64(j), dotSize, dotSize)
			}
		}
	}
	dc.Fill()

	if info.Avatar != nil {
		thumb := imaging.Resize(info.Avatar, avatarSize, avatarSize, imaging.Lanczos)
		dc.DrawCircle(avatarCX, avatarCY, avatarRadius)
		dc.Clip()
		dc.DrawImage(thumb, avatarX, avatarY)
		dc.ResetClip()

		dc.SetHexColor("#ffffff")
		dc.SetLineWidth(4)
		dc.DrawCircle(avatarCX, avatarCY, avatarRadius)
		dc.Stroke()
	}

	// presence indicator
	dc.DrawCircle(indicatorCX, indicatorCY, indicatorRadius)
	if info.Presence.IsOnline() {
		dc.SetHexColor(onlineColor)
	} else {
		dc.SetHexColor(offlineColor)
	}
	dc.FillPreserve()
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(3)
	dc.Stroke()

	// translucent text panel
	dc.SetRGBA(0, 0, 0, 0.3)
	dc.DrawRoundedRectangle(panelX, panelY, panelW, panelH, panelCornerRadius)
	dc.Fill()

	dc.SetFontFace(faces.name)
	dc.SetHexColor("#ffffff")
	dc.DrawString(info.DisplayName, textX, nameBaseline)

	dc.SetFontFace(faces.handle)
	dc.SetHexColor(handleColor)
	dc.DrawString("@"+info.Username, textX, handleBaseline)

	dc.SetFontFace(faces.status)
	dc.SetHexColor("#ffffff")
	status := "Offline"
	if info.Presence.IsOnline() {
		status = "Online"
	}
	dc.DrawString("Status: "+status, textX, statusBaseline)

	text, hex := detailLine(info)
	dc.SetFontFace(faces.detail)
	dc.SetHexColor(hex)
	dc.DrawString(text, textX, detailBaseline)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding card PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// detailLine picks the fourth text line and its color.
func detailLine(info Info) (string, string) {
	switch {
	case info.Presence == PresenceInGame && info.GameName != "":
		return "Playing: " + info.GameName, playingColor
	case info.Presence == PresenceInGame:
		return "Playing a game", playingColor
	case info.Presence.IsOnline():
		return "Online but not playing", idleColor
	default:
		return "Not playing / offline", awayColor
	}
}
