package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextPlainText(t *testing.T) {
	extractor := NewDocumentExtractorService()

	t.Run("txt passes through", func(t *testing.T) {
		got := extractor.ExtractText("resume.txt", []byte("plain resume text"))
		assert.Equal(t, "plain resume text", got)
	})

	t.Run("unknown extension treated as text", func(t *testing.T) {
		got := extractor.ExtractText("resume.md", []byte("markdown resume"))
		assert.Equal(t, "markdown resume", got)
	})

	t.Run("invalid utf8 bytes are replaced", func(t *testing.T) {
		got := extractor.ExtractText("resume.txt", []byte{0xff, 'h', 'i'})
		assert.Equal(t, "�hi", got)
	})

	t.Run("empty input yields empty text", func(t *testing.T) {
		got := extractor.ExtractText("resume.txt", nil)
		assert.Equal(t, "", got)
	})
}

func TestExtractTextPDF(t *testing.T) {
	extractor := NewDocumentExtractorService()

	t.Run("corrupt pdf yields empty text", func(t *testing.T) {
		got := extractor.ExtractText("resume.pdf", []byte("definitely not a pdf"))
		assert.Equal(t, "", got)
	})

	t.Run("truncated pdf header yields empty text", func(t *testing.T) {
		got := extractor.ExtractText("resume.pdf", []byte("%PDF-1.7\n"))
		assert.Equal(t, "", got)
	})
}

func TestExtractTextDocx(t *testing.T) {
	extractor := NewDocumentExtractorService()

	t.Run("paragraphs become lines", func(t *testing.T) {
		docx := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p></w:body></w:document>`)
		got := extractor.ExtractText("resume.docx", docx)
		assert.Equal(t, "Hello\nWorld\n", got)
	})

	t.Run("tabs are preserved", func(t *testing.T) {
		docx := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>2019</w:t></w:r></w:p></w:body></w:document>`)
		got := extractor.ExtractText("resume.docx", docx)
		assert.Equal(t, "Go\t2019\n", got)
	})

	t.Run("archive without document xml yields empty text", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("other.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("<x/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		got := extractor.ExtractText("resume.docx", buf.Bytes())
		assert.Equal(t, "", got)
	})

	t.Run("corrupt archive yields empty text", func(t *testing.T) {
		got := extractor.ExtractText("resume.docx", []byte("not a zip"))
		assert.Equal(t, "", got)
	})

	t.Run("uppercase extension is recognized", func(t *testing.T) {
		docx := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>Hi</w:t></w:r></w:p></w:body></w:document>`)
		got := extractor.ExtractText("RESUME.DOCX", docx)
		assert.Equal(t, "Hi\n", got)
	})
}
