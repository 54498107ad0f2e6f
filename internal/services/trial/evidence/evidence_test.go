package evidence

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
)

type binaryFunc func(ctx context.Context, fileName string, fileType domain.FileType, data []byte) (string, error)

func (f binaryFunc) ExtractText(ctx context.Context, fileName string, fileType domain.FileType, data []byte) (string, error) {
	return f(ctx, fileName, fileType, data)
}

func TestIngestPlainText(t *testing.T) {
	ingestor := NewIngestor(0, nil)
	got, err := ingestor.Ingest(context.Background(), "brief.txt", []byte("  The defendant signed the lease.  "))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got.FileType != domain.FileTypeText {
		t.Fatalf("file type = %q, want txt", got.FileType)
	}
	if got.Text != "The defendant signed the lease." {
		t.Fatalf("text = %q", got.Text)
	}
	if got.WordCount != 5 {
		t.Fatalf("words = %d, want 5", got.WordCount)
	}
	if got.PageCount != 1 {
		t.Fatalf("pages = %d, want 1", got.PageCount)
	}
}

func TestIngestPageEstimate(t *testing.T) {
	ingestor := NewIngestor(0, nil)
	got, err := ingestor.Ingest(context.Background(), "long.md", []byte(strings.Repeat("x", 9100)))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got.PageCount != 3 {
		t.Fatalf("pages = %d, want 3", got.PageCount)
	}
}

func TestDecodeTextLatin1(t *testing.T) {
	// "café" in ISO-8859-1.
	got := DecodeText([]byte{'c', 'a', 'f', 0xe9})
	if got != "café" {
		t.Fatalf("decode = %q, want %q", got, "café")
	}
}

func TestIngestRejects(t *testing.T) {
	ingestor := NewIngestor(16, nil)
	tests := []struct {
		name string
		file string
		data []byte
		code apperrors.Code
	}{
		{"too large", "a.txt", []byte(strings.Repeat("a", 17)), apperrors.CodeDocumentTooLarge},
		{"unsupported", "photo.png", []byte("png"), apperrors.CodeDocumentUnsupportedType},
		{"empty text", "a.txt", []byte("   \n"), apperrors.CodeDocumentEmpty},
		{"binary without extractor", "a.pdf", []byte("%PDF"), apperrors.CodeGatewayPermanent},
	}
	for _, tt := range tests {
		_, err := ingestor.Ingest(context.Background(), tt.file, tt.data)
		if got := apperrors.GetCode(err); got != tt.code {
			t.Fatalf("%s: code = %s, want %s", tt.name, got, tt.code)
		}
	}
}

func TestIngestBinary(t *testing.T) {
	var gotType domain.FileType
	ingestor := NewIngestor(0, binaryFunc(func(_ context.Context, _ string, fileType domain.FileType, _ []byte) (string, error) {
		gotType = fileType
		return strings.Repeat("word ", 1200), nil
	}))
	got, err := ingestor.Ingest(context.Background(), "exhibit.PDF", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if gotType != domain.FileTypePDF {
		t.Fatalf("extractor type = %q, want pdf", gotType)
	}
	if got.WordCount != 1200 || got.PageCount != 2 {
		t.Fatalf("words/pages = %d/%d, want 1200/2", got.WordCount, got.PageCount)
	}
}

func TestIngestBinaryTransientFailure(t *testing.T) {
	ingestor := NewIngestor(0, binaryFunc(func(context.Context, string, domain.FileType, []byte) (string, error) {
		return "", llm.Transient(llm.ReasonRateLimited, errors.New("slow down"))
	}))
	_, err := ingestor.Ingest(context.Background(), "memo.docx", []byte("PK"))
	if !apperrors.IsCode(err, apperrors.CodeGatewayTransient) {
		t.Fatalf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodeGatewayTransient)
	}
}
