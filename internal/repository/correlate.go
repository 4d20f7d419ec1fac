package repository

import (
	"fmt"

	"github.com/jcdickinson/clrdoc/internal/model"
	"github.com/jcdickinson/clrdoc/internal/xmldoc"
)

// Correlate attaches every documentation record to the entity with the same
// kind and identifier. All records are resolved before anything is
// attached, so a record without a matching entity leaves the repository
// unchanged. Correlating the same documentation twice yields the same state.
func (r *Repository) Correlate(doc *xmldoc.Documentation) error {
	if doc == nil {
		return fmt.Errorf("%w: nil documentation", model.ErrInvalidArgument)
	}

	targets := make([]model.Documentable, len(doc.Members))
	for i, rec := range doc.Members {
		e, err := r.Lookup(rec.Kind, rec.Identifier)
		if err != nil {
			return fmt.Errorf("correlating %s: %w", rec, err)
		}
		targets[i] = e
	}

	for i, rec := range doc.Members {
		payload := rec.Doc
		targets[i].AttachDoc(&payload)
	}
	r.log.Info("documentation correlated", "assembly", doc.AssemblyName, "members", len(doc.Members))
	return nil
}
