package apply

import (
	"context"
	"fmt"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// Result says what an application attempt produced. Failed means the
// posting cannot be auto-applied (wrong method, missing contact);
// a transport error comes back as err instead.
type Result struct {
	Submitted bool
	Detail    string
}

// Applier submits one application. Implementations pick the postings
// they can handle via Supports.
type Applier interface {
	Name() string
	Supports(p domain.Posting) bool
	Apply(ctx context.Context, p domain.Posting) (Result, error)
}

// ErrUnsupported is returned by Dispatch when no applier handles the
// posting's application method.
var ErrUnsupported = fmt.Errorf("no applier for posting")

func Dispatch(ctx context.Context, appliers []Applier, p domain.Posting) (string, Result, error) {
	for _, a := range appliers {
		if a.Supports(p) {
			res, err := a.Apply(ctx, p)
			return a.Name(), res, err
		}
	}
	return "", Result{}, ErrUnsupported
}
