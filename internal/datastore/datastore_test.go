package datastore

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newTestDatastore(t *testing.T) *Datastore {
	t.Helper()
	store := NewLocalStore(t.TempDir())
	return New(store, "pudl", "raw")
}

func TestDatastore_ArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	ds := newTestDatastore(t)

	data := []byte("ferc1 raw archive bytes")
	if err := ds.PutArchive(ctx, "ferc1", "year=1994/ferc1-1994.zip", data); err != nil {
		t.Fatalf("PutArchive failed: %v", err)
	}

	got, err := ds.GetArchive(ctx, "ferc1", "year=1994/ferc1-1994.zip")
	if err != nil {
		t.Fatalf("GetArchive failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("archive bytes = %q, want %q", got, data)
	}
}

func TestDatastore_GetArchiveNotFound(t *testing.T) {
	ctx := context.Background()
	ds := newTestDatastore(t)

	if err := ds.PutArchive(ctx, "ferc1", "present.zip", []byte("x")); err != nil {
		t.Fatalf("PutArchive failed: %v", err)
	}

	_, err := ds.GetArchive(ctx, "ferc1", "missing.zip")
	if err == nil {
		t.Fatal("expected an error for missing archive")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}

	var derr *Error
	if !errors.As(err, &derr) || derr.Code != CodeArchiveNotFound {
		t.Errorf("error = %v, want code %s", err, CodeArchiveNotFound)
	}
}

func TestDatastore_ListArchives(t *testing.T) {
	ctx := context.Background()
	ds := newTestDatastore(t)

	for _, name := range []string{
		"year=1994/ferc1-1994.zip",
		"year=1995/ferc1-1995.zip",
	} {
		if err := ds.PutArchive(ctx, "ferc1", name, []byte("x")); err != nil {
			t.Fatalf("PutArchive(%s) failed: %v", name, err)
		}
	}
	if err := ds.PutArchive(ctx, "eia860", "year=2019/eia860-2019.zip", []byte("x")); err != nil {
		t.Fatalf("PutArchive failed: %v", err)
	}

	got, err := ds.ListArchives(ctx, "ferc1")
	if err != nil {
		t.Fatalf("ListArchives failed: %v", err)
	}
	want := []string{"year=1994/ferc1-1994.zip", "year=1995/ferc1-1995.zip"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListArchives = %v, want %v", got, want)
	}
}

func TestDatastore_PutOutputReturnsObjectURL(t *testing.T) {
	ctx := context.Background()
	ds := newTestDatastore(t)

	url, err := ds.PutOutput(ctx, "epacems", "year=2019/state=CO/epacems-2019-CO.parquet", []byte("pq"))
	if err != nil {
		t.Fatalf("PutOutput failed: %v", err)
	}
	want := "minio://pudl/raw/outputs/epacems/year=2019/state=CO/epacems-2019-CO.parquet"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}
