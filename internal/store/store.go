package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clipscribe/clipscribe/internal/transcript"
)

const schema = `
create table if not exists transcriptions (
	id          integer primary key autoincrement,
	name        text not null,
	blake3_hash text not null unique,
	transcript  text not null,
	duration    real not null,
	language    text not null,
	model       text not null,
	confidence  real not null,
	created_at  timestamp not null default current_timestamp
);

create table if not exists words (
	transcription_id integer not null references transcriptions(id),
	seq              integer not null,
	utterance        integer not null,
	text             text not null,
	start_sec        real not null,
	end_sec          real not null,
	confidence       real not null,
	primary key (transcription_id, seq)
);
`

type implStore struct {
	db *sql.DB
}

// New opens (or creates) the sqlite database at path.
func New(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &implStore{db: db}, nil
}

func (s *implStore) Close() error {
	return s.db.Close()
}

// Save stores the result under the content hash. A hash that is already
// stored is left untouched.
func (s *implStore) Save(ctx context.Context, name, hash string, result *transcript.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save transcription: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		insert into transcriptions (name, blake3_hash, transcript, duration, language, model, confidence)
		values (?, ?, ?, ?, ?, ?, ?)
		on conflict(blake3_hash) do nothing`,
		name, hash, result.Transcript,
		result.Metadata.Duration, result.Metadata.Language,
		result.Metadata.Model, result.Metadata.Confidence,
	)
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	if inserted == 0 {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		insert into words (transcription_id, seq, utterance, text, start_sec, end_sec, confidence)
		values (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare word insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	for ui, group := range wordGroups(result) {
		for _, w := range group {
			if _, err := stmt.ExecContext(ctx, id, seq, ui, w.Text, w.Start, w.End, w.Confidence); err != nil {
				return fmt.Errorf("insert word %d: %w", seq, err)
			}
			seq++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save transcription: commit: %w", err)
	}
	return nil
}

// wordGroups returns the words partitioned by utterance; a result without
// utterances yields its flat word list as a single group.
func wordGroups(result *transcript.Result) [][]transcript.Word {
	if len(result.Utterances) == 0 {
		if len(result.Words) == 0 {
			return nil
		}
		return [][]transcript.Word{result.Words}
	}
	groups := make([][]transcript.Word, len(result.Utterances))
	for i, u := range result.Utterances {
		groups[i] = u.Words
	}
	return groups
}

// GetByHash loads a stored result. The second return value reports whether
// the hash was found.
func (s *implStore) GetByHash(ctx context.Context, hash string) (*transcript.Result, bool, error) {
	var (
		id     int64
		result transcript.Result
	)
	err := s.db.QueryRowContext(ctx, `
		select id, transcript, duration, language, model, confidence
		from transcriptions where blake3_hash = ?`, hash).
		Scan(&id, &result.Transcript,
			&result.Metadata.Duration, &result.Metadata.Language,
			&result.Metadata.Model, &result.Metadata.Confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get transcription by hash: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		select utterance, text, start_sec, end_sec, confidence
		from words where transcription_id = ? order by seq`, id)
	if err != nil {
		return nil, false, fmt.Errorf("get words: %w", err)
	}
	defer rows.Close()

	var groups [][]transcript.Word
	lastUtterance := -1
	for rows.Next() {
		var (
			utterance int
			w         transcript.Word
		)
		if err := rows.Scan(&utterance, &w.Text, &w.Start, &w.End, &w.Confidence); err != nil {
			return nil, false, fmt.Errorf("scan word: %w", err)
		}
		if utterance != lastUtterance {
			groups = append(groups, nil)
			lastUtterance = utterance
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], w)
		result.Words = append(result.Words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate words: %w", err)
	}

	result.Utterances = transcript.FromGroups(groups)
	return &result, true, nil
}
