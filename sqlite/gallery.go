package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"image/png"
	"strings"
	"time"

	"github.com/fwojciec/webcollage"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webcollage.Sink = (*Gallery)(nil)

// Entry is one delivered image as stored in the gallery.
type Entry struct {
	ID          string
	URL         string
	Format      string
	Width       int
	Height      int
	Hash        string
	PNG         []byte
	DeliveredAt time.Time
}

// EntryFilter narrows FindEntries. Nil fields match everything.
type EntryFilter struct {
	URL    *string
	Hash   *string
	Limit  int
	Offset int
}

// Gallery records every delivered image, re-encoded as PNG, in delivery order.
type Gallery struct {
	db  *DB
	now func() time.Time
}

// NewGallery creates a new Gallery.
func NewGallery(db *DB) *Gallery {
	return &Gallery{db: db, now: time.Now}
}

// Show stores the image.
func (g *Gallery) Show(ctx context.Context, img *webcollage.Image) error {
	if img == nil || img.Bitmap == nil {
		return webcollage.Errorf(webcollage.EINVALID, "no bitmap to store")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Bitmap); err != nil {
		return err
	}

	b := img.Bounds()
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO images (id, url, format, width, height, hash, png, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), img.URL, img.Format, b.Dx(), b.Dy(), img.Hash, buf.Bytes(),
		g.now().UTC().Format(time.RFC3339Nano))

	return err
}

// FindEntryByID retrieves an entry by ID.
func (g *Gallery) FindEntryByID(ctx context.Context, id string) (*Entry, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT id, url, format, width, height, hash, png, delivered_at
		FROM images
		WHERE id = ?
	`, id)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, webcollage.Errorf(webcollage.ENOTFOUND, "image not found")
	}
	return e, err
}

// FindEntries retrieves entries matching the filter, oldest first.
func (g *Gallery) FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, format, width, height, hash, png, delivered_at FROM images WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Hash != nil {
		query.WriteString(" AND hash = ?")
		args = append(args, *filter.Hash)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := g.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored images.
func (g *Gallery) Count(ctx context.Context) (int, error) {
	var n int
	err := g.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images").Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var deliveredAt string
	if err := s.Scan(&e.ID, &e.URL, &e.Format, &e.Width, &e.Height, &e.Hash, &e.PNG, &deliveredAt); err != nil {
		return nil, err
	}

	t, err := parseTimestamp(deliveredAt, "delivered_at")
	if err != nil {
		return nil, err
	}
	e.DeliveredAt = t
	return &e, nil
}
