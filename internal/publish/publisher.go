package publish

import "context"

// Publisher uploads one build's artifacts to durable storage. Each artifact
// is stored under the key `<componentID>/<artifact name>`. Uploads are
// independent blocking calls; the first failure aborts and already uploaded
// artifacts are not rolled back (overwrite-by-key makes re-publishing the
// same component idempotent, though not atomic across the set).
type Publisher interface {
	// Publish uploads all artifacts and returns the full list of published
	// keys in upload order.
	Publish(ctx context.Context, componentID string, artifacts []Artifact) ([]string, error)
}
