package domain

import (
	"strings"
	"time"
)

// FileType is the ingested document format.
type FileType string

const (
	FileTypeText     FileType = "txt"
	FileTypeMarkdown FileType = "md"
	FileTypePDF      FileType = "pdf"
	FileTypeDOCX     FileType = "docx"
	FileTypeDOC      FileType = "doc"
)

// FileTypeFromName derives the file type from a file extension.
func FileTypeFromName(name string) (FileType, bool) {
	dot := strings.LastIndex(name, ".")
	if dot == -1 || dot == len(name)-1 {
		return "", false
	}
	switch FileType(strings.ToLower(name[dot+1:])) {
	case FileTypeText:
		return FileTypeText, true
	case FileTypeMarkdown:
		return FileTypeMarkdown, true
	case FileTypePDF:
		return FileTypePDF, true
	case FileTypeDOCX:
		return FileTypeDOCX, true
	case FileTypeDOC:
		return FileTypeDOC, true
	default:
		return "", false
	}
}

// IsPlainText reports whether the format can be decoded without extraction.
func (t FileType) IsPlainText() bool {
	return t == FileTypeText || t == FileTypeMarkdown
}

// Document is a piece of evidence uploaded by one side. Its side never changes.
type Document struct {
	ID            string
	CaseID        string
	Side          Side
	Title         string
	FileName      string
	FileType      FileType
	ExtractedText string
	PageCount     int
	WordCount     int
	UploadedBy    string
	UploadedAt    time.Time
}

// Validate checks the fields every stored document carries.
func (d Document) Validate() error {
	if strings.TrimSpace(d.CaseID) == "" {
		return ErrEmptyCaseID
	}
	if !d.Side.Valid() {
		return ErrInvalidSide
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyDocumentTitle
	}
	if strings.TrimSpace(d.ExtractedText) == "" {
		return ErrEmptyDocument
	}
	return nil
}
