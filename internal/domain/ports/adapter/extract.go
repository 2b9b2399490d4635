package adapter

// TextExtractor converts raw uploaded bytes plus the declared content type
// into plain text. Failures wrap domain.ErrExtraction.
type TextExtractor interface {
	Extract(data []byte, contentType, filename string) (string, error)
}
