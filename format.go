package pasteboard

import (
	"strconv"
	"strings"

	"go.klb.dev/pasteboard/internal/clip"
)

// Format is an image representation the pasteboard understands. The zero
// value is not a valid format.
type Format int

const (
	FormatPNG Format = iota + 1
	FormatTIFF
)

// Formats lists every valid Format.
var Formats = []Format{FormatPNG, FormatTIFF}

// ParseFormat converts a name, file extension, MIME type or UTI into a
// Format. Matching is case-insensitive. Unknown names yield a *TypeError.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png", "image/png", "public.png":
		return FormatPNG, nil
	case "tiff", "tif", "image/tiff", "public.tiff":
		return FormatTIFF, nil
	}
	return 0, &TypeError{Op: "parse format", Format: s, Err: ErrUnknownFormat}
}

// Valid reports whether f is one of the defined formats.
func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatTIFF
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// MIME returns the media type of f, or "" for an invalid format.
func (f Format) MIME() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatTIFF:
		return "image/tiff"
	}
	return ""
}

func (f Format) clipType() clip.Type {
	switch f {
	case FormatPNG:
		return clip.TypePNG
	case FormatTIFF:
		return clip.TypeTIFF
	}
	return ""
}

// other returns the format f can be converted from.
func (f Format) other() Format {
	if f == FormatPNG {
		return FormatTIFF
	}
	return FormatPNG
}

// check returns a *TypeError for invalid formats.
func (f Format) check(op string) error {
	if f.Valid() {
		return nil
	}
	return &TypeError{Op: op, Format: f.String(), Err: ErrUnknownFormat}
}
