package extract

import (
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/ports/adapter"
)

var _ adapter.TextExtractor = (*Extractor)(nil)

// Extractor converts uploaded bytes into plain text. Textual content types
// are decoded directly; PDF and Word uploads currently return a simulated
// contract body, pending a real parser integration.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

var textualTypes = map[string]bool{
	"application/json": true,
	"application/xml":  true,
	"text/csv":         true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

func (e *Extractor) Extract(data []byte, contentType, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrExtraction)
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.HasPrefix(mt, "text/") || textualTypes[mt]:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s document is not valid UTF-8", domain.ErrExtraction, mt)
		}
		return string(data), nil
	case documentTypes[mt]:
		return simulatedContract(filename), nil
	default:
		return "", fmt.Errorf("%w: unsupported content type %q", domain.ErrExtraction, contentType)
	}
}

// simulatedContract stands in for a real PDF/Word text extraction pass.
func simulatedContract(filename string) string {
	return "NON-DISCLOSURE AGREEMENT\n\n" +
		"This Nondisclosure Agreement (the 'Agreement') is entered into by and between [Party A] and [Party B].\n" +
		"1. Confidential Information. The term 'Confidential Information' means any information disclosed by one party to the other.\n" +
		"2. Obligations. Receiver shall hold and maintain the Confidential Information in strictest confidence for a period of 2 years.\n" +
		"3. Termination. This agreement may be terminated with 30 days written notice.\n" +
		"(Text extracted from file: " + filename + ")"
}
