/*
Package treeio reads treebank trees.

Two input formats are supported: bracketed trees (Penn Treebank style,
continuous constituents, terminal positions assigned left to right) and
the NeGra/TIGER export format, whose explicit parent references allow
discontinuous constituents.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treeio

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treegram.treeio'.
func tracer() tracing.Trace {
	return tracing.Select("treegram.treeio")
}

// ErrFormat flags unparseable treebank input. The error message
// identifies the offending token or line.
var ErrFormat = errors.New("format error")
