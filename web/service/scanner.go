package service

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"comicshelf/config"
	"comicshelf/logger"
	"comicshelf/util/common"

	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ErrNoBarcode is returned by DetectISBN when no barcode symbol is found in
// the image.
var ErrNoBarcode = common.NewError("no barcode detected in the image")

// ScannerService stages uploaded cover images and extracts ISBN barcodes
// from them. Decoding is stateless; staging files are transient and swept by
// the cleanup job.
type ScannerService struct{}

// StagePath returns a staging path for an uploaded file. The name is
// prefixed with a UUID so concurrent uploads with identical client-supplied
// filenames never clobber each other.
func (s *ScannerService) StagePath(filename string) (string, error) {
	dir := config.GetUploadFolder()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	name := uuid.NewString() + "_" + filepath.Base(filename)
	return filepath.Join(dir, name), nil
}

// DetectISBN opens the image and decodes the first UPC/EAN symbol found,
// returning its text payload. An image without a readable symbol comes back
// as ErrNoBarcode.
func (s *ScannerService) DetectISBN(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", err
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	hints := map[gozxing.DecodeHintType]any{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	reader := oned.NewMultiFormatUPCEANReader(hints)
	result, err := reader.Decode(bmp, hints)
	if err != nil {
		logger.Debugf("barcode decode failed for %s: %v", imagePath, err)
		return "", ErrNoBarcode
	}
	return result.GetText(), nil
}

// Discard removes a staging file, logging rather than failing on error.
func (s *ScannerService) Discard(path string) {
	if err := os.Remove(path); err != nil {
		logger.Warning("discard staged upload err:", err)
	}
}
