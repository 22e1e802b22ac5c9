package stegimg

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal is a database of every image a message has been encoded into
type Journal struct {
	db *sql.DB
}

// Entry is a single encoded image
type Entry struct {
	// SHA1 is the checksum of the saved image file
	SHA1     string
	Name     string
	Width    int
	Height   int
	Capacity string

	// Length is the message length in bytes
	Length      int
	MessageSHA1 string
	Created     time.Time
}

// NewJournal opens or creates the journal stored in file
func NewJournal(file string) (*Journal, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS carrier (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS message (id INTEGER PRIMARY KEY NOT NULL, carrier_id INTEGER NOT NULL UNIQUE, sha1 TEXT NOT NULL, length INTEGER NOT NULL, capacity TEXT NOT NULL, created INTEGER NOT NULL, FOREIGN KEY(carrier_id) REFERENCES carrier(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{
		db: db,
	}, nil
}

// Close closes the journal
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) addCarrier(sha, name string, width, height int) (int64, error) {
	var id int64
	switch err := j.db.QueryRow("SELECT id FROM carrier WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := j.db.Exec("INSERT INTO carrier (sha1, name, width, height) VALUES (?, ?, ?, ?)", sha, name, width, height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := j.db.Exec("UPDATE carrier SET name = ? WHERE id = ?", name, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// Record adds e to the journal, replacing any previous entry for the same
// image
func (j *Journal) Record(e Entry) error {
	carrier, err := j.addCarrier(e.SHA1, e.Name, e.Width, e.Height)
	if err != nil {
		return err
	}

	if e.Created.IsZero() {
		e.Created = time.Now()
	}

	if _, err := j.db.Exec("INSERT OR REPLACE INTO message (carrier_id, sha1, length, capacity, created) VALUES (?, ?, ?, ?, ?)", carrier, e.MessageSHA1, e.Length, e.Capacity, e.Created.UnixNano()); err != nil {
		return err
	}

	return nil
}

const selectEntry = "SELECT c.sha1, c.name, c.width, c.height, m.capacity, m.length, m.sha1, m.created FROM carrier AS c JOIN message AS m ON m.carrier_id = c.id"

type scanner interface {
	Scan(...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var created int64
	if err := row.Scan(&e.SHA1, &e.Name, &e.Width, &e.Height, &e.Capacity, &e.Length, &e.MessageSHA1, &created); err != nil {
		return nil, err
	}
	e.Created = time.Unix(0, created)
	return &e, nil
}

// FindBySHA1 returns the entry for the image with the given checksum, or
// nil if there isn't one
func (j *Journal) FindBySHA1(sha string) (*Entry, error) {
	e, err := scanEntry(j.db.QueryRow(selectEntry+" WHERE c.sha1 = ?", sha))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

// History returns every entry, newest first
func (j *Journal) History() ([]Entry, error) {
	rows, err := j.db.Query(selectEntry + " ORDER BY m.created DESC, m.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}
