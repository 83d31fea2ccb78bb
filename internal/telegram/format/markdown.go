package format

import "regexp"

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 = 2
)

var (
	mdV1Re = regexp.MustCompile("([_*\\\\\\[`])")
	mdV2Re = regexp.MustCompile(`[_*\[\]()~` + "`" + `>#+\-=|{}.!]`)
)

// EscapeMarkdown escapes characters that Telegram treats as markup, so
// user-provided strings render literally. Unknown versions return the
// text unchanged.
func EscapeMarkdown(text string, version int) string {
	switch version {
	case MarkdownV1:
		return mdV1Re.ReplaceAllString(text, `\$1`)
	case MarkdownV2:
		return mdV2Re.ReplaceAllString(text, `\$0`)
	}
	return text
}
