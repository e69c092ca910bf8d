package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	pdfreader "github.com/ledongthuc/pdf"
)

// Assembler packages a captured image into document bytes.
type Assembler interface {
	Assemble(img *Image) ([]byte, error)
}

// PDFAssembler embeds a capture into a single PDF page sized exactly to the
// image, one point per pixel.
type PDFAssembler struct {
	Title  string
	Author string
}

// Assemble returns the serialized PDF.
func (a PDFAssembler) Assemble(img *Image) ([]byte, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, ErrEmptyCapture
	}
	w, h := float64(img.Width), float64(img.Height)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if a.Title != "" {
		doc.SetTitle(a.Title, true)
	}
	if a.Author != "" {
		doc.SetAuthor(a.Author, true)
	}
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("capture", opts, bytes.NewReader(img.PNG))
	doc.ImageOptions("capture", 0, 0, w, h, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Verify re-reads data as a PDF and requires exactly one page.
func Verify(data []byte) (err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if n := r.NumPage(); n != 1 {
		return fmt.Errorf("%w: found %d pages", ErrCorruptDocument, n)
	}
	return nil
}
