package datastore

import (
	"context"
	"fmt"
	"strings"
)

// Datastore maps dataset partitions onto object keys in a single bucket:
//
//	<prefix>/<dataset>/<partition path>
//
// Raw input archives are staged under the dataset name; run outputs go
// under the outputs prefix.
type Datastore struct {
	store      ObjectStore
	bucket     string
	basePrefix string
}

// New creates a datastore over the given object store and bucket.
func New(store ObjectStore, bucket, basePrefix string) *Datastore {
	return &Datastore{store: store, bucket: bucket, basePrefix: basePrefix}
}

// Ping verifies the underlying object store is reachable.
func (d *Datastore) Ping(ctx context.Context) error {
	return d.store.Ping(ctx)
}

// GetArchive fetches a raw archive object for a dataset partition.
func (d *Datastore) GetArchive(ctx context.Context, dataset, name string) ([]byte, error) {
	return d.store.GetObject(ctx, d.bucket, d.key(dataset, name))
}

// PutArchive stages a raw archive object for a dataset partition, creating
// the bucket if needed.
func (d *Datastore) PutArchive(ctx context.Context, dataset, name string, data []byte) error {
	if err := d.store.EnsureBucket(ctx, d.bucket); err != nil {
		return err
	}
	return d.store.PutObject(ctx, d.bucket, d.key(dataset, name), data)
}

// ListArchives returns the archive keys staged for a dataset, relative to
// the dataset prefix.
func (d *Datastore) ListArchives(ctx context.Context, dataset string) ([]string, error) {
	prefix := d.key(dataset, "")
	keys, err := d.store.ListPrefix(ctx, d.bucket, prefix)
	if err != nil {
		return nil, err
	}
	rel := make([]string, 0, len(keys))
	for _, k := range keys {
		rel = append(rel, strings.TrimPrefix(k, prefix))
	}
	return rel, nil
}

// PutOutput writes a pipeline output artifact and returns its object URL.
func (d *Datastore) PutOutput(ctx context.Context, dataset, name string, data []byte) (string, error) {
	if err := d.store.EnsureBucket(ctx, d.bucket); err != nil {
		return "", err
	}
	key := d.key("outputs", joinKey(dataset, name))
	if err := d.store.PutObject(ctx, d.bucket, key, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("minio://%s/%s", d.bucket, key), nil
}

func (d *Datastore) key(dataset, name string) string {
	return joinKey(d.basePrefix, dataset, name)
}

func joinKey(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}
	joined := strings.Join(kept, "/")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		// Preserve the trailing slash for prefix listings.
		joined += "/"
	}
	return joined
}
