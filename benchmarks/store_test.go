package benchmarks

import (
	"context"
	"os"
	"testing"

	"github.com/randalmurphal/boolgrep/pkg/boolgrep"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/store"
)

func sampleRecord() []byte {
	rec := store.NewRecord("run-1", "doc.log", "error AND NOT debug", "a AND NOT b")
	rec.Matched = true
	for i := 0; i < 20; i++ {
		rec.Matches = append(rec.Matches, store.Span{Start: i * 40, Length: 5, Line: i + 1})
	}
	data, _ := rec.Marshal()
	return data
}

// BenchmarkMemoryStore_Save measures in-memory result saves.
func BenchmarkMemoryStore_Save(b *testing.B) {
	s := store.NewMemoryStore()
	data := sampleRecord()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Save("run-1", docName(i%100), data)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite result saves.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	s, cleanup := createSQLiteStore(b)
	defer cleanup()
	data := sampleRecord()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Save("run-1", docName(i%100), data)
	}
}

// BenchmarkSQLiteStore_Load measures SQLite result loads.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	s, cleanup := createSQLiteStore(b)
	defer cleanup()
	_ = s.Save("run-1", "doc.log", sampleRecord())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Load("run-1", "doc.log")
	}
}

// BenchmarkSearch_WithStore measures a search that saves every result.
func BenchmarkSearch_WithStore(b *testing.B) {
	s, cleanup := createSQLiteStore(b)
	defer cleanup()
	docs := documents(16, 200)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		searcher := boolgrep.MustNew("error AND NOT debug", boolgrep.WithStore(s))
		_, _ = searcher.Search(ctx, docs)
	}
}

// BenchmarkRecordUnmarshal measures decoding a stored result.
func BenchmarkRecordUnmarshal(b *testing.B) {
	data := sampleRecord()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Unmarshal(data)
	}
}

func createSQLiteStore(b *testing.B) (*store.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	s, err := store.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}
	return s, func() {
		s.Close()
		os.Remove(tmpFile.Name())
		os.Remove(tmpFile.Name() + "-wal")
		os.Remove(tmpFile.Name() + "-shm")
	}
}
