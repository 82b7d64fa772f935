package document

import (
	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/sanitize"
)

// Sanitize returns a copy of d with labels reduced to plain text and
// descriptions limited to inline formatting markup.
func Sanitize(d design.Design) design.Design {
	out := d.Clone()
	out.Title = sanitize.Label(out.Title)
	for _, block := range out.Blocks {
		for i := range block {
			block[i].Label = sanitize.Label(block[i].Label)
			block[i].Description = sanitize.Description(block[i].Description)
		}
	}
	return out
}
