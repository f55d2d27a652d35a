package julia

import (
	"bytes"
	"errors"
)

var errUnbalanced = errors.New("end without matching if")

// block appends lines to a buffer at a tracked indentation depth. Every
// guard opened through it must be closed through it.
type block struct {
	buf   *bytes.Buffer
	depth int
	open  int
}

func newBlock(buf *bytes.Buffer, depth int) *block {
	return &block{buf: buf, depth: depth}
}

func (b *block) line(s string) {
	b.buf.WriteString(Indent(b.depth))
	b.buf.WriteString(s)
	b.buf.WriteByte('\n')
}

// openGuard starts an "if <name> !== nothing" block.
func (b *block) openGuard(name string) {
	b.line("if " + name + " !== nothing")
	b.depth++
	b.open++
}

// closeGuard writes the "end" for the innermost open guard.
func (b *block) closeGuard() error {
	if b.open == 0 {
		return errUnbalanced
	}
	b.open--
	b.depth--
	b.line("end")
	return nil
}

func (b *block) balanced() bool {
	return b.open == 0
}
