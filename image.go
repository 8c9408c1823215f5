package pasteboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/image/tiff"

	"go.klb.dev/pasteboard/internal/clip"
)

// CopyImage puts the PNG file at path on the clipboard.
func (p *Pasteboard) CopyImage(path string) error {
	return p.SetImage(path, FormatPNG)
}

// SetImage puts the image file at path on the clipboard as format f. The
// bytes are installed verbatim. Filesystem errors are returned unchanged.
func (p *Pasteboard) SetImage(path string, f Format) error {
	if err := f.check("set image"); err != nil {
		return err
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write("set image", []clip.Item{{Type: f.clipType(), Data: data}})
}

// SetTextAndImage puts text and the image file at path on the clipboard in a
// single write, so both are available together.
func (p *Pasteboard) SetTextAndImage(text, path string, f Format) error {
	if err := f.check("set text and image"); err != nil {
		return err
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write("set text and image", []clip.Item{
		textItem(text),
		{Type: f.clipType(), Data: data},
	})
}

// PasteImage writes the clipboard's PNG image to path.
func (p *Pasteboard) PasteImage(path string, overwrite bool) (string, error) {
	return p.GetImage(path, FormatPNG, overwrite)
}

// GetImage writes the clipboard image in format f to path and returns path.
// An existing file is left alone and an error matching ErrFileExists is
// returned unless overwrite is set. A clipboard without the representation
// yields a *TypeError.
func (p *Pasteboard) GetImage(path string, f Format, overwrite bool) (string, error) {
	const op = "get image"
	if err := f.check(op); err != nil {
		return "", err
	}
	if !overwrite {
		exists, err := afero.Exists(p.fs, path)
		if err != nil {
			return "", err
		}
		if exists {
			return "", &fs.PathError{Op: op, Path: path, Err: ErrFileExists}
		}
	}

	p.mu.Lock()
	data, err := p.imageData(op, f)
	p.mu.Unlock()
	if err != nil {
		return "", err
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	out, err := p.fs.OpenFile(path, flag, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		p.discard(path, overwrite)
		return "", err
	}
	if err := out.Close(); err != nil {
		p.discard(path, overwrite)
		return "", err
	}
	p.log.Debug("clipboard image saved", "path", path, "format", f, "size_bytes", len(data))
	return path, nil
}

// discard removes a file GetImage created but failed to fill. With overwrite
// the file may have existed before, so it is left for the caller.
func (p *Pasteboard) discard(path string, overwrite bool) {
	if overwrite {
		return
	}
	if err := p.fs.Remove(path); err != nil {
		p.log.Warn("remove partial image file", "path", path, "err", err)
	}
}

// GetImageData returns the clipboard image in format f.
func (p *Pasteboard) GetImageData(f Format) ([]byte, error) {
	const op = "get image data"
	if err := f.check(op); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.imageData(op, f)
}

// imageData reads representation f, converting from the other image format
// when enabled. Caller holds p.mu.
func (p *Pasteboard) imageData(op string, f Format) ([]byte, error) {
	data, err := p.backend.Read(f.clipType())
	if err != nil {
		return nil, backendErr(op, f.clipType(), err)
	}
	if data != nil {
		return data, nil
	}
	if p.convert {
		src, err := p.backend.Read(f.other().clipType())
		if err != nil {
			return nil, backendErr(op, f.other().clipType(), err)
		}
		if src != nil {
			out, err := convertImage(src, f.other(), f)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			return out, nil
		}
	}
	return nil, &TypeError{Op: op, Format: f.String(), Err: ErrNoRepresentation}
}

// convertImage decodes data as from and re-encodes it as to.
func convertImage(data []byte, from, to Format) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch from {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatTIFF:
		img, err = tiff.Decode(bytes.NewReader(data))
	default:
		return nil, errors.New("convert: bad source format")
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from, err)
	}

	var buf bytes.Buffer
	switch to {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, errors.New("convert: bad target format")
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to, err)
	}
	return buf.Bytes(), nil
}
