package card

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceSet holds the four text faces the card layout uses.
type faceSet struct {
	name   font.Face // display name, bold 24
	handle font.Face // @username, regular 16
	status font.Face // status line, bold 18
	detail font.Face // activity line, regular 16
}

var (
	fontOnce sync.Once
	faces    faceSet
)

// InitFonts loads the text faces used by Render, optionally from a custom
// TTF file that then backs every weight (the card was designed around a
// single registered family). A missing or unparseable file falls back to
// the bundled Go fonts. The first call wins; repeat calls are no-ops, and
// Render performs a fallback initialization if the server never called this.
func InitFonts(path string, logger *slog.Logger) {
	fontOnce.Do(func() { faces = loadFaces(path, logger) })
}

func loadFaces(path string, logger *slog.Logger) faceSet {
	regular, bold := goregular.TTF, gobold.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil:
			logger.Info("custom font not found, using bundled fonts", "path", path, "error", err)
		default:
			if _, perr := opentype.Parse(data); perr != nil {
				logger.Warn("custom font unparseable, using bundled fonts", "path", path, "error", perr)
			} else {
				regular, bold = data, data
			}
		}
	}
	return faceSet{
		name:   mustFace(bold, 24),
		handle: mustFace(regular, 16),
		status: mustFace(bold, 18),
		detail: mustFace(regular, 16),
	}
}

// mustFace builds a face from TTF data already known to parse (the bundled
// Go fonts, or custom data vetted by loadFaces).
func mustFace(ttf []byte, size float64) font.Face {
	fnt, err := opentype.Parse(ttf)
	if err == nil {
		face, ferr := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if ferr == nil {
			return face
		}
		err = ferr
	}
	panic(fmt.Sprintf("loading card font: %v", err))
}
