package ics

import "strings"

var (
	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	escaper    = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, "\n", `\n`)
)

// Escape applies the TEXT escaping rule: backslash, semicolon, comma and
// newline get a leading backslash, the newline becoming the two characters
// `\n`. CR and CRLF count as newlines so no raw line break reaches the
// document. Everything else passes through.
func Escape(s string) string {
	return escaper.Replace(lineBreaks.Replace(s))
}

// Unescape reverses [Escape]. `\N` is accepted as a newline. An unknown
// escape or a trailing lone backslash is kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)

			continue
		}

		i++

		switch next := s[i]; next {
		case '\\', ';', ',':
			b.WriteByte(next)
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
	}

	return b.String()
}
