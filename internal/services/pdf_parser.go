package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	// ExtractText reads an in-memory PDF such as a downloaded résumé.
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(data []byte) (text string, err error) {
	defer recoverPDF(&err)

	if len(data) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	text, _ = readPages(r, false)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (content *PDFContent, err error) {
	defer recoverPDF(&err)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, totalPage := readPages(r, true)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// recoverPDF turns a panic inside the pdf package into *err. Deferred callers
// must use named results; the other results keep their zero values.
func recoverPDF(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("malformed PDF content: %v", rec)
	}
}

func readPages(r *pdf.Reader, pageHeaders bool) (string, int) {
	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		if pageHeaders {
			fmt.Fprintf(&textBuilder, "--- Page %d ---\n", pageIndex)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage
}

// HasPDFSignature reports whether content starts with the %PDF magic bytes.
func HasPDFSignature(r io.Reader) bool {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return false
	}
	return bytes.Equal(header, []byte("%PDF"))
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
