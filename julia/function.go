package julia

import (
	"bytes"
	"strings"

	"github.com/broady/jlbind/ir"
)

// Signature returns the function header for t: required parameters are
// positional, optional parameters are keywords defaulting to nothing.
//
//	function knn(reference; k = nothing, query = nothing)
func Signature(t ir.Tool) string {
	var sb strings.Builder
	sb.WriteString("function ")
	sb.WriteString(t.Program)
	sb.WriteString("(")

	for i, p := range t.Required() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
	}

	if opt := t.Optional(); len(opt) > 0 {
		sb.WriteString("; ")
		for i, p := range opt {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			sb.WriteString(" = nothing")
		}
	}

	sb.WriteString(")")
	return sb.String()
}

// EmitFunction renders t's input processing inside its function wrapper.
// The chunk is produced first so a failing tool writes nothing.
func (e *Emitter) EmitFunction(buf *bytes.Buffer, t ir.Tool) error {
	chunk, err := e.EmitTool(t)
	if err != nil {
		return err
	}
	buf.WriteString(Signature(t))
	buf.WriteByte('\n')
	buf.Write(chunk)
	buf.WriteString("end\n")
	return nil
}
