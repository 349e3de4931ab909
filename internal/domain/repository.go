package domain

import (
	"context"
	"io"
	"time"
)

// WorkbookReader reads the first sheet of a workbook as a headerless grid
type WorkbookReader interface {
	ReadFirstSheet(ctx context.Context, r io.Reader) (Grid, error)
}

// WorkbookWriter writes a table (header row first) as a single-sheet workbook
type WorkbookWriter interface {
	WriteTable(ctx context.Context, w io.Writer, table *Table) error
}

// StoredFile is a workbook produced by one invocation and kept for download
type StoredFile struct {
	ID        string
	Name      string
	Data      []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// FileStore keeps produced workbooks until they expire
type FileStore interface {
	Put(ctx context.Context, name string, data []byte, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (*StoredFile, error)
	Delete(ctx context.Context, id string) error
}
