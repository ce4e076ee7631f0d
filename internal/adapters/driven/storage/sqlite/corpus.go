package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.CorpusLoader = (*Store)(nil)
	_ driven.CorpusWriter = (*Store)(nil)
)

// metaExportedAt records when the corpus was last written.
const metaExportedAt = "exported_at"

// Format returns the payload format.
func (s *Store) Format() domain.CorpusFormat {
	return domain.CorpusFormatSQLite
}

// Source returns the database path.
func (s *Store) Source() string {
	return s.path
}

// Write replaces the stored corpus with works, preserving order.
func (s *Store) Write(ctx context.Context, works []domain.Work) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"characters", "motifs", "themes", "works", "authors"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	authorIDs := make(map[domain.Author]int64)
	for pos, w := range works {
		authorID, ok := authorIDs[w.Author]
		if !ok {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO authors (name, year_of_birth, year_of_death, information) VALUES (?, ?, ?, ?)`,
				w.Author.Name, w.Author.YearOfBirth, w.Author.YearOfDeath, w.Author.Information)
			if err != nil {
				return fmt.Errorf("inserting author %q: %w", w.Author.Name, err)
			}
			if authorID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("author id: %w", err)
			}
			authorIDs[w.Author] = authorID
		}

		var year sql.NullString
		if v, ok := w.Analysis.Year.Get(); ok {
			year = sql.NullString{String: v, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO works (position, id, author_id, title, year, genre, summary) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pos, w.ID, authorID, w.Analysis.Name, year, w.Analysis.Genre, w.Analysis.Summary)
		if err != nil {
			return fmt.Errorf("inserting work %q: %w", w.Analysis.Name, err)
		}

		for i, t := range w.Analysis.Themes {
			if err := insertEntry(ctx, tx, "themes", pos, i, t.ThemeName, t.Info); err != nil {
				return err
			}
		}
		for i, m := range w.Analysis.Motifs {
			if err := insertEntry(ctx, tx, "motifs", pos, i, m.MotifName, m.Info); err != nil {
				return err
			}
		}
		for i, c := range w.Analysis.Characters {
			if err := insertEntry(ctx, tx, "characters", pos, i, c.Name, c.Info); err != nil {
				return err
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO corpus_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaExportedAt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logger.Debug("Wrote %d works (%d authors) to %s", len(works), len(authorIDs), s.path)
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, table string, work, pos int, name, info string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO "+table+" (work_position, position, name, info) VALUES (?, ?, ?, ?)",
		work, pos, name, info)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}

// Load reads every work in stored order.
func (s *Store) Load(ctx context.Context) ([]domain.Work, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.position, w.id, w.title, w.year, w.genre, w.summary,
		       a.name, a.year_of_birth, a.year_of_death, a.information
		FROM works w
		JOIN authors a ON a.id = w.author_id
		ORDER BY w.position`)
	if err != nil {
		return nil, fmt.Errorf("querying works: %w", err)
	}
	defer rows.Close()

	works := []domain.Work{}
	index := make(map[int]int)
	for rows.Next() {
		var (
			pos  int
			w    domain.Work
			year sql.NullString
		)
		err := rows.Scan(&pos, &w.ID, &w.Analysis.Name, &year, &w.Analysis.Genre, &w.Analysis.Summary,
			&w.Author.Name, &w.Author.YearOfBirth, &w.Author.YearOfDeath, &w.Author.Information)
		if err != nil {
			return nil, fmt.Errorf("scanning work: %w", err)
		}
		if year.Valid {
			w.Analysis.Year = domain.YearOf(year.String)
		}
		w.Analysis.Themes = []domain.Theme{}
		w.Analysis.Motifs = []domain.Motif{}
		w.Analysis.Characters = []domain.Character{}
		index[pos] = len(works)
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating works: %w", err)
	}

	err = s.loadEntries(ctx, "themes", func(work int, name, info string) {
		if i, ok := index[work]; ok {
			works[i].Analysis.Themes = append(works[i].Analysis.Themes, domain.Theme{ThemeName: name, Info: info})
		}
	})
	if err != nil {
		return nil, err
	}
	err = s.loadEntries(ctx, "motifs", func(work int, name, info string) {
		if i, ok := index[work]; ok {
			works[i].Analysis.Motifs = append(works[i].Analysis.Motifs, domain.Motif{MotifName: name, Info: info})
		}
	})
	if err != nil {
		return nil, err
	}
	err = s.loadEntries(ctx, "characters", func(work int, name, info string) {
		if i, ok := index[work]; ok {
			works[i].Analysis.Characters = append(works[i].Analysis.Characters, domain.Character{Name: name, Info: info})
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Read %d works from %s", len(works), s.path)
	return works, nil
}

func (s *Store) loadEntries(ctx context.Context, table string, add func(work int, name, info string)) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT work_position, name, info FROM "+table+" ORDER BY work_position, position")
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			work       int
			name, info string
		)
		if err := rows.Scan(&work, &name, &info); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		add(work, name, info)
	}
	return rows.Err()
}

// ExportedAt returns when the corpus was last written, if ever.
func (s *Store) ExportedAt(ctx context.Context) (time.Time, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM corpus_meta WHERE key = ?", metaExportedAt).Scan(&v)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Ensure CorpusLoader implements the interface.
var _ driven.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader opens the database for each load so that a file replaced
// on disk is picked up on reload.
type CorpusLoader struct {
	path string
}

// NewCorpusLoader creates a loader for the database at path.
func NewCorpusLoader(path string) *CorpusLoader {
	return &CorpusLoader{path: path}
}

// Load opens the database, reads the corpus and closes it again.
// A missing file is an error rather than an empty corpus.
func (l *CorpusLoader) Load(ctx context.Context) ([]domain.Work, error) {
	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	store, err := Open(l.path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

// Format returns the payload format.
func (l *CorpusLoader) Format() domain.CorpusFormat {
	return domain.CorpusFormatSQLite
}

// Source returns the database path.
func (l *CorpusLoader) Source() string {
	return l.path
}
