package imagestore_test

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"litlog/pkg/imagestore"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

var nameRe = regexp.MustCompile(`^[0-9a-f]{16}\.(jpg|png)$`)

// fileHeader builds a multipart.FileHeader carrying the encoded image, the
// way an upload arrives at the handler.
func fileHeader(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{255, 255, 255, 255})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("picture", filename)
	assert.NoError(t, err)
	if strings.HasSuffix(filename, ".jpg") {
		assert.NoError(t, jpeg.Encode(fw, img, nil))
	} else {
		assert.NoError(t, png.Encode(fw, img))
	}
	assert.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	return form.File["picture"][0]
}

func TestSavePicture_DownscalesLargeImages(t *testing.T) {
	store, err := imagestore.New(t.TempDir())
	assert.NoError(t, err)

	name, err := store.SavePicture(fileHeader(t, "big.png", 300, 200))
	assert.NoError(t, err)
	assert.Regexp(t, nameRe, name)
	assert.True(t, strings.HasSuffix(name, ".png"))

	saved, err := imaging.Open(filepath.Join(store.Dir(), name))
	assert.NoError(t, err)
	bounds := saved.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 125)
	assert.LessOrEqual(t, bounds.Dy(), 125)
	assert.Equal(t, 125, bounds.Dx())
	// 300x200 keeps its 3:2 aspect ratio.
	assert.InDelta(t, 1.5, float64(bounds.Dx())/float64(bounds.Dy()), 0.05)
}

func TestSavePicture_KeepsSmallImages(t *testing.T) {
	store, err := imagestore.New(t.TempDir())
	assert.NoError(t, err)

	name, err := store.SavePicture(fileHeader(t, "small.jpg", 50, 40))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	saved, err := imaging.Open(filepath.Join(store.Dir(), name))
	assert.NoError(t, err)
	assert.Equal(t, 50, saved.Bounds().Dx())
	assert.Equal(t, 40, saved.Bounds().Dy())
}

func TestSavePicture_RejectsOtherFormats(t *testing.T) {
	store, err := imagestore.New(t.TempDir())
	assert.NoError(t, err)

	for _, filename := range []string{"anim.gif", "photo.webp", "doc.pdf", "noext"} {
		_, err := store.SavePicture(fileHeader(t, filename, 10, 10))
		assert.ErrorIs(t, err, imagestore.ErrUnsupportedFormat, "filename %s", filename)
	}
}

func TestSavePicture_GeneratesUniqueNames(t *testing.T) {
	store, err := imagestore.New(t.TempDir())
	assert.NoError(t, err)

	header := fileHeader(t, "same.png", 10, 10)
	first, err := store.SavePicture(header)
	assert.NoError(t, err)
	second, err := store.SavePicture(header)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
