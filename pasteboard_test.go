package pasteboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"go.klb.dev/pasteboard/internal/clip"
)

const (
	testPNG  = "/fixtures/test.png"
	testTIFF = "/fixtures/test.tiff"
)

type fixture struct {
	fs      afero.Fs
	backend Backend
	png     []byte
	tiff    []byte
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 200, A: 255})
		}
	}
	var pngBuf, tiffBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	require.NoError(t, tiff.Encode(&tiffBuf, img, nil))

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, testPNG, pngBuf.Bytes(), 0o644))
	require.NoError(t, afero.WriteFile(fsys, testTIFF, tiffBuf.Bytes(), 0o644))

	return &fixture{
		fs:      fsys,
		backend: NewMemoryBackend(),
		png:     pngBuf.Bytes(),
		tiff:    tiffBuf.Bytes(),
	}
}

func (f *fixture) open(opts ...Option) *Pasteboard {
	base := []Option{
		WithBackend(f.backend),
		WithFS(f.fs),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(append(base, opts...)...)
}

func TestCopyPaste(t *testing.T) {
	pb := newFixture(t).open()

	require.NoError(t, pb.Copy("Hello World"))
	got, err := pb.Paste()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
}

func TestSetGetText(t *testing.T) {
	pb := newFixture(t).open()

	require.NoError(t, pb.SetText("Hello World"))
	got, err := pb.GetText()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
}

func TestPaste_NoText(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	got, err := pb.Paste()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, pb.CopyImage(testPNG))
	got, err = pb.Paste()
	require.NoError(t, err)
	assert.Empty(t, got, "an image-only clipboard has no text")
}

func TestAppend(t *testing.T) {
	t.Run("concatenates", func(t *testing.T) {
		pb := newFixture(t).open()
		require.NoError(t, pb.Copy("Hello"))
		require.NoError(t, pb.Append(" World"))

		got, err := pb.Paste()
		require.NoError(t, err)
		assert.Equal(t, "Hello World", got)
	})

	t.Run("empty clipboard behaves like copy", func(t *testing.T) {
		pb := newFixture(t).open()
		require.NoError(t, pb.Append("World"))

		got, err := pb.Paste()
		require.NoError(t, err)
		assert.Equal(t, "World", got)
	})

	t.Run("is not a change for the same handle", func(t *testing.T) {
		pb := newFixture(t).open()
		require.NoError(t, pb.Copy("a"))
		require.NoError(t, pb.Append("b"))

		changed, err := pb.HasChanged()
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	require.NoError(t, pb.SetTextAndImage("Hello World", testPNG, FormatPNG))
	require.NoError(t, pb.Clear())

	got, err := pb.Paste()
	require.NoError(t, err)
	assert.Empty(t, got)

	hasText, err := pb.HasText()
	require.NoError(t, err)
	assert.False(t, hasText)

	hasImage, err := pb.HasImage()
	require.NoError(t, err)
	assert.False(t, hasImage)
}

func TestCopy_DropsImage(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	require.NoError(t, pb.CopyImage(testPNG))
	require.NoError(t, pb.Copy("text"))

	hasImage, err := pb.HasImage()
	require.NoError(t, err)
	assert.False(t, hasImage)
}

func TestImageRoundTrip(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		path   string
		format Format
		want   []byte
	}{
		{"png", testPNG, FormatPNG, f.png},
		{"tiff", testTIFF, FormatTIFF, f.tiff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := f.open()
			require.NoError(t, pb.SetImage(tt.path, tt.format))

			data, err := pb.GetImageData(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestPasteImage(t *testing.T) {
	f := newFixture(t)
	pb := f.open()
	require.NoError(t, pb.CopyImage(testPNG))

	dest := "/out/test.png"
	got, err := pb.PasteImage(dest, false)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	written, err := afero.ReadFile(f.fs, dest)
	require.NoError(t, err)
	assert.Equal(t, f.png, written)

	t.Run("existing file without overwrite", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(f.fs, dest, []byte("keep"), 0o644))

		_, err := pb.PasteImage(dest, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileExists)
		assert.ErrorIs(t, err, fs.ErrExist)

		kept, err := afero.ReadFile(f.fs, dest)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(kept), "file must not be modified")
	})

	t.Run("existing file with overwrite", func(t *testing.T) {
		_, err := pb.PasteImage(dest, true)
		require.NoError(t, err)

		written, err := afero.ReadFile(f.fs, dest)
		require.NoError(t, err)
		assert.Equal(t, f.png, written)
	})
}

func TestGetImage_TIFF(t *testing.T) {
	f := newFixture(t)
	pb := f.open()
	require.NoError(t, pb.SetImage(testTIFF, FormatTIFF))

	dest := "/out/temp.tiff"
	_, err := pb.GetImage(dest, FormatTIFF, false)
	require.NoError(t, err)

	written, err := afero.ReadFile(f.fs, dest)
	require.NoError(t, err)
	assert.Equal(t, f.tiff, written)

	_, err = pb.GetImage(dest, FormatTIFF, false)
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestGetImage_MissingRepresentation(t *testing.T) {
	f := newFixture(t)
	pb := f.open()
	require.NoError(t, pb.SetImage(testTIFF, FormatTIFF))

	_, err := pb.GetImage("/out/x.png", FormatPNG, false)
	require.Error(t, err)
	assert.True(t, IsTypeError(err))
	assert.ErrorIs(t, err, ErrNoRepresentation)

	exists, err := afero.Exists(f.fs, "/out/x.png")
	require.NoError(t, err)
	assert.False(t, exists, "no file is created on failure")

	_, err = pb.GetImageData(FormatPNG)
	assert.ErrorIs(t, err, ErrNoRepresentation)
}

// failingWriteFs creates files normally but every Write on them fails.
type failingWriteFs struct {
	afero.Fs
}

func (f failingWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return failingWriteFile{file}, nil
}

type failingWriteFile struct {
	afero.File
}

var errDiskFull = errors.New("no space left on device")

func (failingWriteFile) Write([]byte) (int, error) { return 0, errDiskFull }

func TestGetImage_WriteFailure(t *testing.T) {
	f := newFixture(t)
	pb := f.open(WithFS(failingWriteFs{f.fs}))
	require.NoError(t, pb.CopyImage(testPNG))

	t.Run("new file is removed", func(t *testing.T) {
		_, err := pb.PasteImage("/out/fail.png", false)
		assert.ErrorIs(t, err, errDiskFull)

		exists, err := afero.Exists(f.fs, "/out/fail.png")
		require.NoError(t, err)
		assert.False(t, exists, "partial file left behind")
	})

	t.Run("overwritten file is kept", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(f.fs, "/out/old.png", []byte("old"), 0o644))

		_, err := pb.PasteImage("/out/old.png", true)
		assert.ErrorIs(t, err, errDiskFull)

		exists, err := afero.Exists(f.fs, "/out/old.png")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestSetImage_MissingFile(t *testing.T) {
	pb := newFixture(t).open()

	err := pb.SetImage("/nope.png", FormatPNG)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, IsTypeError(err))
}

func TestInvalidFormat(t *testing.T) {
	f := newFixture(t)
	pb := f.open()
	require.NoError(t, pb.CopyImage(testPNG))

	_, parseErr := ParseFormat("invalid")
	bad := Format(42)

	var zero Format
	_, zeroErr := pb.GetImageData(zero)

	errs := map[string]error{
		"parse":          parseErr,
		"zero value":     zeroErr,
		"set image":      pb.SetImage(testPNG, bad),
		"text and image": pb.SetTextAndImage("x", testPNG, bad),
	}
	_, errs["get image"] = pb.GetImage("/out/invalid.png", bad, false)
	_, errs["get image data"] = pb.GetImageData(bad)
	_, errs["has image"] = pb.HasImageFormat(bad)

	for name, err := range errs {
		t.Run(name, func(t *testing.T) {
			var te *TypeError
			require.True(t, errors.As(err, &te), "want *TypeError, got %v", err)
			assert.ErrorIs(t, err, ErrUnknownFormat)
		})
	}

	// The clipboard is untouched by rejected writes.
	data, err := pb.GetImageData(FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, f.png, data)
}

func TestSetTextAndImage(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	require.NoError(t, pb.SetTextAndImage("caption", testPNG, FormatPNG))

	hasText, err := pb.HasText()
	require.NoError(t, err)
	assert.True(t, hasText)

	hasImage, err := pb.HasImage()
	require.NoError(t, err)
	assert.True(t, hasImage)

	text, err := pb.GetText()
	require.NoError(t, err)
	assert.Equal(t, "caption", text)

	data, err := pb.GetImageData(FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, f.png, data)
}

func TestHasText(t *testing.T) {
	pb := newFixture(t).open()

	require.NoError(t, pb.Copy("Hello World"))
	ok, err := pb.HasText()
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, pb.Clear())
	ok, err = pb.HasText()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasImage(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	require.NoError(t, pb.Copy("Hello World"))
	ok, err := pb.HasImage()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, pb.CopyImage(testPNG))
	ok, err = pb.HasImage()
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, pb.Clear())
	ok, err = pb.HasImage()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasImageFormat(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	check := func(format Format, want bool) {
		t.Helper()
		ok, err := pb.HasImageFormat(format)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "HasImageFormat(%s)", format)
	}

	require.NoError(t, pb.SetImage(testPNG, FormatPNG))
	check(FormatPNG, true)
	check(FormatTIFF, false)

	require.NoError(t, pb.SetImage(testTIFF, FormatTIFF))
	check(FormatTIFF, true)
	check(FormatPNG, false)
}

func TestHasChanged(t *testing.T) {
	f := newFixture(t)

	pb := f.open()
	require.NoError(t, pb.Copy("Hello World"))
	changed, err := pb.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed, "own write is not a change")

	pb2 := f.open()
	require.NoError(t, pb2.Copy("Hello World 2"))

	changed, err = pb.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed, "write through another handle is a change")

	changed, err = pb.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed, "a change is reported once")

	changed, err = pb2.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestHasChanged_OwnImageAndClear(t *testing.T) {
	f := newFixture(t)
	pb := f.open()

	require.NoError(t, pb.CopyImage(testPNG))
	require.NoError(t, pb.SetTextAndImage("t", testTIFF, FormatTIFF))
	require.NoError(t, pb.Clear())

	changed, err := pb.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)

	other := f.open()
	require.NoError(t, other.Clear())

	changed, err = pb.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestHasChanged_FingerprintedBackend(t *testing.T) {
	f := newFixture(t)
	f.backend = clip.Fingerprinted(clip.NewMemory())

	a := f.open()
	b := f.open()

	require.NoError(t, a.Copy("from a"))

	changed, err := a.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed, "own write is not a change")

	changed, err = b.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed, "write through another handle is a change")

	require.NoError(t, b.CopyImage(testPNG))

	changed, err = b.HasChanged()
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = a.HasChanged()
	require.NoError(t, err)
	assert.True(t, changed)
}

// flakyCounter fails the next failures ChangeCount calls.
type flakyCounter struct {
	Backend
	failures int
}

func (b *flakyCounter) ChangeCount() (int64, error) {
	if b.failures > 0 {
		b.failures--
		return 0, errors.New("pasteboard server busy")
	}
	return b.Backend.ChangeCount()
}

func TestHasChanged_ChangeCountRetry(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyCounter{Backend: f.backend}
	f.backend = flaky
	pb := f.open()

	t.Run("one failure after a write", func(t *testing.T) {
		flaky.failures = 1
		require.NoError(t, pb.Copy("mine"))

		changed, err := pb.HasChanged()
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("persistent failure", func(t *testing.T) {
		flaky.failures = 2
		require.NoError(t, pb.Copy("mine again"))

		changed, err := pb.HasChanged()
		require.NoError(t, err)
		assert.True(t, changed, "an unrecorded own write is reported once")

		changed, err = pb.HasChanged()
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("error surfaces from HasChanged", func(t *testing.T) {
		flaky.failures = 1
		_, err := pb.HasChanged()
		assert.Error(t, err)
	})
}

func TestConversion(t *testing.T) {
	f := newFixture(t)
	pb := f.open(WithConversion(true))

	require.NoError(t, pb.SetImage(testTIFF, FormatTIFF))

	ok, err := pb.HasImageFormat(FormatPNG)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := pb.GetImageData(FormatPNG)
	require.NoError(t, err)
	converted, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	want, err := png.Decode(bytes.NewReader(f.png))
	require.NoError(t, err)
	assert.Equal(t, want.Bounds(), converted.Bounds())
	for _, pt := range []image.Point{{0, 0}, {3, 2}, {1, 1}} {
		assert.Equal(t, color.RGBAModel.Convert(want.At(pt.X, pt.Y)), color.RGBAModel.Convert(converted.At(pt.X, pt.Y)))
	}

	t.Run("png to tiff", func(t *testing.T) {
		require.NoError(t, pb.SetImage(testPNG, FormatPNG))
		data, err := pb.GetImageData(FormatTIFF)
		require.NoError(t, err)
		img, err := tiff.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	})

	t.Run("no image at all", func(t *testing.T) {
		require.NoError(t, pb.Copy("text"))
		_, err := pb.GetImageData(FormatPNG)
		assert.ErrorIs(t, err, ErrNoRepresentation)
	})
}

func TestBackendName(t *testing.T) {
	pb := newFixture(t).open()
	assert.Equal(t, "memory", pb.Backend())
}
