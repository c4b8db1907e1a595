// Package format renders parsed TPEG modules back out, either as
// canonical grammar source or as a JSON dump of the AST.
package format

import (
	"github.com/dhamidi/tpeg/grammar"
)

// Encoder writes a parsed module file to an output.
type Encoder interface {
	Encode(file *grammar.ModuleFile) error
}
