package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"
)

// Extract returns the best-effort plain text of doc. Parse failures are
// reported through Result.Warning with empty text; only an unsupported
// file type is returned as an error.
func Extract(doc Document) (Result, error) {
	switch doc.Type {
	case PDF:
		text, err := extractPDFText(doc.Data)
		if err != nil {
			return Result{Warning: &ExtractionError{Format: "pdf", Err: err}}, nil
		}
		return Result{Text: text}, nil

	case DOCX:
		text, err := extractDocxText(doc.Data)
		if err != nil {
			return Result{Warning: &ExtractionError{Format: "docx", Err: err}}, nil
		}
		return Result{Text: text}, nil

	case TXT:
		text, err := decodeText(doc.Data)
		if err != nil {
			return Result{Warning: &DecodeError{Err: err}}, nil
		}
		return Result{Text: text}, nil

	default:
		return Result{}, &UnsupportedFileTypeError{Ext: extOf(doc.Name)}
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(pageText)
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs walks word/document.xml and returns the text of each
// top-level w:body paragraph in order. Paragraphs inside tables are skipped,
// and only runs that are direct children of the paragraph or of one of its
// hyperlinks contribute text.
func bodyParagraphs(content string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		inPara     bool
		paraDepth  int
	)
	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}
	// paragraphRun reports whether stack[i] is a run read as paragraph text.
	paragraphRun := func(i int) bool {
		switch i {
		case paraDepth:
			return stack[i] == "r"
		case paraDepth + 1:
			return stack[i] == "r" && stack[paraDepth] == "hyperlink"
		}
		return false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case name == "p" && parent() == "body":
				inPara = true
				paraDepth = len(stack) + 1
				current.Reset()
			case inPara && paragraphRun(len(stack)-1):
				switch name {
				case "tab", "ptab":
					current.WriteByte('\t')
				case "br":
					if breakType(t) == "textWrapping" {
						current.WriteByte('\n')
					}
				case "cr":
					current.WriteByte('\n')
				case "noBreakHyphen":
					current.WriteByte('-')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if inPara && len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if inPara && parent() == "t" && paragraphRun(len(stack)-2) {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

// breakType returns the w:type of a w:br. Page and column breaks carry no text.
func breakType(el xml.StartElement) string {
	for _, a := range el.Attr {
		if a.Name.Local == "type" {
			return a.Value
		}
	}
	return "textWrapping"
}

// decodeText decodes as UTF-8, falling back to ISO-8859-1.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("latin-1 fallback: %w", err)
	}
	return string(decoded), nil
}
