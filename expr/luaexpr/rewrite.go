package luaexpr

import (
	"strconv"
	"strings"
)

// rewriteCalls inserts a call-site index as the first argument of every call
// to a name in functions. Indices start at next. It returns the trimmed
// rewritten source, the first index and the number of indices used.
func rewriteCalls(src string, functions map[string]int, next int) (string, int, int) {
	src = strings.TrimSpace(src)
	first := next

	var b strings.Builder
	b.Grow(len(src) + 8)

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '"' || c == '\'':
			end := skipString(src, i)
			b.WriteString(src[i:end])
			i = end

		case c == '[' && longBracketLevel(src, i) >= 0:
			end := skipLongBracket(src, i, longBracketLevel(src, i))
			b.WriteString(src[i:end])
			i = end

		case c == '-' && i+1 < len(src) && src[i+1] == '-':
			if level := longBracketLevel(src, i+2); level >= 0 {
				// A block comment separates tokens like whitespace.
				b.WriteByte(' ')
				i = skipLongBracket(src, i+2, level)
				continue
			}
			// Comment runs to end of line.
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				i = len(src)
			} else {
				i += end
			}

		case isIdentStart(c):
			end := i + 1
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			name := src[i:end]
			b.WriteString(name)
			i = end

			arity, ok := functions[name]
			if !ok || isMemberAccess(src, i-len(name)) {
				continue
			}
			paren := i
			for paren < len(src) && isSpace(src[paren]) {
				paren++
			}
			if paren >= len(src) || src[paren] != '(' {
				continue
			}
			b.WriteString(src[i : paren+1])
			b.WriteString(strconv.Itoa(next))
			if arity > 0 {
				b.WriteString(", ")
			}
			next++
			i = paren + 1

		case c >= '0' && c <= '9':
			// Numbers may contain identifier characters (1e3, 0x1F).
			end := i + 1
			for end < len(src) && (isIdentPart(src[end]) || src[end] == '.') {
				end++
			}
			b.WriteString(src[i:end])
			i = end

		default:
			b.WriteByte(c)
			i++
		}
	}

	return strings.TrimSpace(b.String()), first, next - first
}

func skipString(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(src)
}

// longBracketLevel returns n if src[start:] opens a long bracket [=*n[ and
// -1 otherwise.
func longBracketLevel(src string, start int) int {
	if start >= len(src) || src[start] != '[' {
		return -1
	}
	i := start + 1
	for i < len(src) && src[i] == '=' {
		i++
	}
	if i < len(src) && src[i] == '[' {
		return i - start - 1
	}
	return -1
}

// skipLongBracket returns the index just past the ]=*level] that closes the
// long bracket opened at start, or len(src) if it is unterminated.
func skipLongBracket(src string, start, level int) int {
	closing := "]" + strings.Repeat("=", level) + "]"
	open := start + level + 2
	end := strings.Index(src[open:], closing)
	if end < 0 {
		return len(src)
	}
	return open + end + len(closing)
}

// isMemberAccess reports whether the identifier at pos follows '.' or ':'.
func isMemberAccess(src string, pos int) bool {
	for pos > 0 {
		pos--
		if isSpace(src[pos]) {
			continue
		}
		if src[pos] == ':' {
			return true
		}
		// ".." is concatenation, not member access.
		return src[pos] == '.' && (pos == 0 || src[pos-1] != '.')
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
