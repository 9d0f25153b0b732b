package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"
)

// Résumé document kinds, named by file extension.
const (
	KindPDF  = "pdf"
	KindDOCX = "docx"
	KindText = "txt"
)

// DocumentKind returns the document kind for filename.
func DocumentKind(filename string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext {
	case KindPDF, KindDOCX, KindText:
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .pdf, .docx or .txt)", ErrUnsupportedDocument, filepath.Ext(filename))
	}
}

// ExtractDocumentText returns the cleaned text of an uploaded résumé.
func ExtractDocumentText(filename string, data []byte) (string, *Metadata, error) {
	kind, err := DocumentKind(filename)
	if err != nil {
		return "", nil, err
	}

	var raw string
	switch kind {
	case KindPDF:
		raw, err = pdfText(data)
	case KindDOCX:
		raw, err = docxText(data)
	default:
		raw = decodeText(data)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", filename, err)
	}

	text := CleanText(raw)
	if text == "" {
		return "", nil, fmt.Errorf("%s: %w", filename, ErrEmptyDocument)
	}
	meta := NewMetadata(text, SourceDocument)
	meta.Path = filepath.Base(filename)
	return text, meta, nil
}

// pdfText concatenates the plain text of every non-empty page.
func pdfText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		if strings.TrimSpace(content) != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// docxText returns the paragraphs of word/document.xml, one per line.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return wordXMLText(doc.Editable().GetContent())
}

// wordXMLText keeps the text runs of a WordprocessingML body.
func wordXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// decodeText reads plain text as UTF-8, falling back to Windows-1254 for
// legacy Turkish files.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1254.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}
