package extract

import (
	"errors"
	"fmt"
	"strings"
)

// FileType is the closed set of formats a résumé can arrive in.
type FileType int

const (
	Unsupported FileType = iota
	PDF
	DOCX
	TXT
)

func (t FileType) String() string {
	switch t {
	case PDF:
		return "pdf"
	case DOCX:
		return "docx"
	case TXT:
		return "txt"
	default:
		return "unsupported"
	}
}

// ParseFileType maps an extension (with or without the leading dot) to a FileType.
func ParseFileType(ext string) FileType {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "txt":
		return TXT
	default:
		return Unsupported
	}
}

// extOf returns whatever follows the last dot, or the whole name when there is none.
func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return strings.ToLower(filename[i+1:])
	}
	return strings.ToLower(filename)
}

type Document struct {
	Name string
	Type FileType
	Data []byte
}

func NewDocument(filename string, data []byte) Document {
	return Document{
		Name: filename,
		Type: ParseFileType(extOf(filename)),
		Data: data,
	}
}

// Result is the raw text of a document. Warning is set when a recoverable
// failure forced Text to be empty.
type Result struct {
	Text    string
	Warning error
}

var ErrUnsupportedFileType = errors.New("unsupported file type")

type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: please upload pdf, docx, or txt", e.Ext)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", strings.ToUpper(e.Format), e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read TXT file: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
