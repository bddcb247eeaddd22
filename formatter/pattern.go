package formatter

import (
	"bytes"
	"os"
	"strconv"

	"github.com/philipp01105/sinklog/core"
)

const (
	// DefaultSinkPattern is what a sink renders with before it receives a
	// pattern of its own.
	DefaultSinkPattern = "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v"
)

var pid = strconv.Itoa(os.Getpid())

// item is one compiled pattern element: a literal run or a single flag.
type item struct {
	flag byte
	lit  string
}

// Pattern is a compiled format template. It is immutable and safe for
// concurrent use.
type Pattern struct {
	src   string
	items []item
}

// NewPattern compiles a pattern string.
func NewPattern(pattern string) *Pattern {
	p := &Pattern{src: pattern}
	var lit []byte
	flushLit := func() {
		if len(lit) > 0 {
			p.items = append(p.items, item{lit: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i == len(pattern)-1 {
			lit = append(lit, c)
			continue
		}
		i++
		f := pattern[i]
		switch f {
		case '%':
			lit = append(lit, '%')
		case 'T':
			flushLit()
			p.items = append(p.items, item{flag: 'H'}, item{lit: ":"}, item{flag: 'M'}, item{lit: ":"}, item{flag: 'S'})
		case 'D':
			flushLit()
			p.items = append(p.items, item{flag: 'm'}, item{lit: "/"}, item{flag: 'd'}, item{lit: "/"}, item{flag: 'y'})
		default:
			if !knownFlag(f) {
				lit = append(lit, '%', f)
				continue
			}
			flushLit()
			p.items = append(p.items, item{flag: f})
		}
	}
	flushLit()
	return p
}

func knownFlag(f byte) bool {
	switch f {
	case 'v', 'l', 'L', 'n', 'Y', 'y', 'm', 'd', 'H', 'I', 'M', 'S', 'p',
		'e', 'f', 'F', 'a', 'A', 'b', 'B', 'z', 'E', 's', 'g', '#', '!', '@', 'P', '^', '$':
		return true
	}
	return false
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.src
}

// Format appends the rendered record and a trailing newline to buf.
func (p *Pattern) Format(rec *core.Record, buf *bytes.Buffer) ColorRange {
	var cr ColorRange
	colorOpen := false
	t := rec.Time

	for _, it := range p.items {
		if it.flag == 0 {
			buf.WriteString(it.lit)
			continue
		}
		switch it.flag {
		case 'v':
			buf.WriteString(rec.Message)
		case 'l':
			buf.WriteString(rec.Level.String())
		case 'L':
			buf.WriteString(rec.Level.Letter())
		case 'n':
			buf.WriteString(rec.LoggerName)
		case 'Y':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "2006"))
		case 'y':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "06"))
		case 'm':
			pad(buf, int(t.Month()), 2)
		case 'd':
			pad(buf, t.Day(), 2)
		case 'H':
			pad(buf, t.Hour(), 2)
		case 'I':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "03"))
		case 'M':
			pad(buf, t.Minute(), 2)
		case 'S':
			pad(buf, t.Second(), 2)
		case 'p':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "PM"))
		case 'e':
			pad(buf, t.Nanosecond()/1e6, 3)
		case 'f':
			pad(buf, t.Nanosecond()/1e3, 6)
		case 'F':
			pad(buf, t.Nanosecond(), 9)
		case 'a':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "Mon"))
		case 'A':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "Monday"))
		case 'b':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "Jan"))
		case 'B':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "January"))
		case 'z':
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), "-07:00"))
		case 'E':
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), t.Unix(), 10))
		case 's':
			if rec.Caller.Defined {
				buf.WriteString(rec.Caller.ShortFile)
			}
		case 'g':
			if rec.Caller.Defined {
				buf.WriteString(rec.Caller.File)
			}
		case '#':
			if rec.Caller.Defined {
				buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))
			}
		case '!':
			if rec.Caller.Defined {
				buf.WriteString(rec.Caller.Function)
			}
		case '@':
			if rec.Caller.Defined {
				buf.WriteString(rec.Caller.ShortFile)
				buf.WriteByte(':')
				buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))
			}
		case 'P':
			buf.WriteString(pid)
		case '^':
			cr.Start = buf.Len()
			colorOpen = true
		case '$':
			if colorOpen {
				cr.End = buf.Len()
				colorOpen = false
			}
		}
	}

	if colorOpen {
		cr.End = buf.Len()
	}
	buf.WriteByte('\n')
	return cr
}

// Render returns the rendered record as a new byte slice.
func (p *Pattern) Render(rec *core.Record) []byte {
	buf := getBuffer()
	p.Format(rec, buf)
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	putBuffer(buf)
	return out
}

// pad writes n in decimal, zero-padded to width digits.
func pad(buf *bytes.Buffer, n, width int) {
	var tmp [20]byte
	b := strconv.AppendInt(tmp[:0], int64(n), 10)
	for i := len(b); i < width; i++ {
		buf.WriteByte('0')
	}
	buf.Write(b)
}
