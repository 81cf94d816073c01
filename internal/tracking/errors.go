package tracking

import "errors"

// Sentinel error kinds for the ingestion pipeline. Feed readers and the
// deserializer wrap these with context via fmt.Errorf("...: %w", ...);
// callers classify with errors.Is.
var (
	// ErrParse marks a malformed record in a feed where every record must
	// decode. Fatal: the whole load aborts with no partial dataset.
	ErrParse = errors.New("malformed record")

	// ErrFormat marks a field value that cannot be attributed (unknown team
	// flag, ball-owning code, or ball-state code). Fatal for the same reason.
	ErrFormat = errors.New("unrecognized field value")

	// ErrMissingField marks required match metadata that a provider depends
	// on but did not supply.
	ErrMissingField = errors.New("missing metadata field")
)
