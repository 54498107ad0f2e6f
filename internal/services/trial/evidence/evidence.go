// Package evidence turns uploaded files into the text the judge reads.
package evidence

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"golang.org/x/text/encoding/charmap"
)

const (
	// DefaultMaxUploadBytes caps a single upload.
	DefaultMaxUploadBytes = 10 << 20
	// charsPerPage estimates pages for plain text.
	charsPerPage = 3000
	// wordsPerPage estimates pages for extracted binary formats.
	wordsPerPage = 500
)

// Extraction is the readable content of an uploaded file.
type Extraction struct {
	FileType  domain.FileType
	Text      string
	PageCount int
	WordCount int
}

// BinaryExtractor reads text out of formats that cannot be decoded directly.
type BinaryExtractor interface {
	ExtractText(ctx context.Context, fileName string, fileType domain.FileType, data []byte) (string, error)
}

// Ingestor validates uploads and extracts their text.
type Ingestor struct {
	maxBytes int
	binary   BinaryExtractor
}

// NewIngestor builds an ingestor. A nil binary extractor rejects pdf and
// word documents as a permanent gateway failure.
func NewIngestor(maxBytes int, binary BinaryExtractor) *Ingestor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Ingestor{maxBytes: maxBytes, binary: binary}
}

// MaxBytes returns the upload limit.
func (i *Ingestor) MaxBytes() int {
	return i.maxBytes
}

// Ingest validates one upload and returns its text and size estimates.
func (i *Ingestor) Ingest(ctx context.Context, fileName string, data []byte) (Extraction, error) {
	if len(data) > i.maxBytes {
		return Extraction{}, apperrors.WithMetadata(
			apperrors.CodeDocumentTooLarge,
			fmt.Sprintf("document is %d bytes, limit %d", len(data), i.maxBytes),
			map[string]string{"LimitBytes": strconv.Itoa(i.maxBytes)},
		)
	}
	fileType, ok := domain.FileTypeFromName(fileName)
	if !ok {
		ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
		return Extraction{}, apperrors.WithMetadata(
			apperrors.CodeDocumentUnsupportedType,
			fmt.Sprintf("file %q has an unsupported type", fileName),
			map[string]string{"FileType": ext},
		)
	}

	if fileType.IsPlainText() {
		text := strings.TrimSpace(DecodeText(data))
		if text == "" {
			return Extraction{}, domain.ErrEmptyDocument
		}
		return Extraction{
			FileType:  fileType,
			Text:      text,
			PageCount: max(1, utf8.RuneCountInString(text)/charsPerPage),
			WordCount: CountWords(text),
		}, nil
	}

	if len(data) == 0 {
		return Extraction{}, domain.ErrEmptyDocument
	}
	var (
		text string
		err  error
	)
	if i.binary == nil {
		err = llm.Permanent(llm.ReasonNotConfigured, fmt.Errorf("document extraction is not configured"))
	} else {
		text, err = i.binary.ExtractText(ctx, fileName, fileType, data)
	}
	if err != nil {
		return Extraction{}, llm.ToAppError(err, "extract document")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Extraction{}, domain.ErrEmptyDocument
	}
	words := CountWords(text)
	return Extraction{
		FileType:  fileType,
		Text:      text,
		PageCount: max(1, words/wordsPerPage),
		WordCount: words,
	}, nil
}

// DecodeText reads UTF-8 and falls back to Latin-1 for legacy files.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
