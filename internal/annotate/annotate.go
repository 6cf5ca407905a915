// Package annotate defines the boundary to the entity/intelligence
// annotator. The pipeline treats annotation as advisory input from an
// opaque collaborator; this package supplies the interface plus a heuristic
// implementation that needs no external service.
package annotate

import (
	"context"

	"github.com/hellothere012/ghostbrief/internal/model"
)

// Annotator produces entities and a draft intelligence annotation for a
// document. Implementations may call out to an AI service; the pipeline
// never depends on more than this contract.
type Annotator interface {
	Annotate(ctx context.Context, doc model.Document) (model.Entities, model.Annotation, error)
}

// Apply runs the annotator over a batch in place, then normalizes every
// document. Annotator failures degrade to empty annotation for that document
// rather than failing the batch: partial intelligence beats none.
func Apply(ctx context.Context, a Annotator, docs []model.Document) error {
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		entities, annot, err := a.Annotate(ctx, docs[i])
		if err == nil {
			docs[i].Entities = entities
			docs[i].Annot = annot
		}
		docs[i].Normalize()
	}
	return nil
}
