package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// chunkBuilder accumulates pieces and seeds each new chunk with the tail of
// the previous one.
type chunkBuilder struct {
	maxSize int
	overlap int
	chunks  []string
	current strings.Builder
}

func (cb *chunkBuilder) add(piece, sep string) {
	if cb.current.Len() > 0 && cb.current.Len()+len(piece)+len(sep) > cb.maxSize {
		prev := cb.current.String()
		cb.chunks = append(cb.chunks, prev)
		cb.current.Reset()

		if tail := getLastNChars(prev, cb.overlap); tail != "" {
			cb.current.WriteString(tail)
		}
	}

	if cb.current.Len() > 0 {
		cb.current.WriteString(sep)
	}
	cb.current.WriteString(piece)
}

func (cb *chunkBuilder) finish() []string {
	if cb.current.Len() > 0 {
		cb.chunks = append(cb.chunks, cb.current.String())
	}
	return cb.chunks
}

// ChunkText splits on paragraphs, falling back to sentences for paragraphs
// longer than maxChunkSize.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	cb := &chunkBuilder{maxSize: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			cb.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			cb.add(sentence, " ")
		}
	}

	return cb.finish()
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
