package listview

import "github.com/rshade/dynlist/internal/ingest"

// RenderSnapshot renders a single frame of records without a running
// program. The status line is included; key help is not.
func RenderSnapshot(records []ingest.Record, width, height int, scrollY float64) (string, error) {
	return RenderSnapshotWithOptions(records, Options{
		Width:          width,
		Height:         height,
		InitialScrollY: scrollY,
	})
}

// RenderSnapshotWithOptions is RenderSnapshot with full control over options.
func RenderSnapshotWithOptions(records []ingest.Record, opts Options) (string, error) {
	m, err := New(records, opts)
	if err != nil {
		return "", err
	}
	defer m.list.Destroy()
	return m.Snapshot(), nil
}
