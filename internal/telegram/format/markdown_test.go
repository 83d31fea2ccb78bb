package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV1(t *testing.T) {
	assert.Equal(t, `ivan\_petrov`, EscapeMarkdown("ivan_petrov", MarkdownV1))
	assert.Equal(t, `\*bold\*`, EscapeMarkdown("*bold*", MarkdownV1))
	assert.Equal(t, "plain text", EscapeMarkdown("plain text", MarkdownV1))
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `a\.b\!c`, EscapeMarkdown("a.b!c", MarkdownV2))
	assert.Equal(t, `\(x\)`, EscapeMarkdown("(x)", MarkdownV2))
}

func TestEscapeMarkdownUnknownVersion(t *testing.T) {
	assert.Equal(t, "*raw*", EscapeMarkdown("*raw*", 99))
}
