package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var errNoDocumentXML = errors.New("no word/document.xml found in docx")

// DocumentExtractorService converts an uploaded resume into raw text.
// Extraction is strictly best-effort: a corrupt or unreadable document
// yields an empty string, never an error, so scoring can degrade instead
// of failing the submission path.
type DocumentExtractorService interface {
	ExtractText(filename string, data []byte) string
}

type documentExtractorService struct{}

func NewDocumentExtractorService() DocumentExtractorService {
	return &documentExtractorService{}
}

func (s *documentExtractorService) ExtractText(filename string, data []byte) (text string) {
	// The PDF parser can panic on malformed files.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Text extraction panicked for %s: %v\n", filename, r)
			text = ""
		}
	}()

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		extracted, err := extractPDFText(data)
		if err != nil {
			log.Printf("⚠️  Failed to extract PDF text from %s: %v\n", filename, err)
			return ""
		}
		return extracted
	case ".docx":
		extracted, err := extractDocxText(data)
		if err != nil {
			log.Printf("⚠️  Failed to extract DOCX text from %s: %v\n", filename, err)
			return ""
		}
		return extracted
	default:
		// Treat anything else as plain text, replacing invalid byte
		// sequences instead of failing.
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errNoDocumentXML
	}

	// Paragraph boundaries become newlines before all tags are stripped.
	xml := strings.ReplaceAll(string(docXML), "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return xmlTagPattern.ReplaceAllString(xml, ""), nil
}
