// Package calcstore persists calculator preferences and history in a bbolt
// key-value file.
package calcstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fjl/gio-scicalc/internal/history"
	bolt "go.etcd.io/bbolt"
)

const (
	dbFile = "scicalc.db"

	keySound   = "calculator-sound"
	keyHistory = "calculator-history"
)

var bucket = []byte("settings")

// Store is the persistent key-value store of the calculator.
type Store struct {
	dataDir string
	db      *bolt.DB
}

// Open opens the store in datadir, creating it if necessary.
func Open(datadir string) (*Store, error) {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, err
	}
	filename := filepath.Join(datadir, dbFile)
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("data file opened: %s", filename)
	return &Store{dataDir: datadir, db: db}, nil
}

// Dir returns the data directory of the store.
func (s *Store) Dir() string {
	return s.dataDir
}

// Close closes the store. All saved values are on disk when it returns.
func (s *Store) Close() error {
	err := s.db.Close()
	log.Printf("data file closed (err: %v)", err)
	return err
}

// Persist flushes the data file to disk.
func (s *Store) Persist() error {
	err := s.db.Sync()
	log.Printf("data file flushed (err: %v)", err)
	return err
}

// Sound returns the stored sound preference. Sound is on unless it was
// explicitly turned off.
func (s *Store) Sound() bool {
	v, err := s.get(keySound)
	if err != nil {
		log.Printf("read %s: %v", keySound, err)
	}
	return string(v) != "off"
}

// SaveSound stores the sound preference.
func (s *Store) SaveSound(on bool) error {
	v := "off"
	if on {
		v = "on"
	}
	return s.put(keySound, []byte(v))
}

// LoadHistory returns the stored history, oldest first. A missing or
// unreadable history yields an empty list.
func (s *Store) LoadHistory() []history.Entry {
	v, err := s.get(keyHistory)
	if err != nil {
		log.Printf("read %s: %v", keyHistory, err)
		return nil
	}
	entries, err := decodeHistory(v)
	if err != nil {
		log.Printf("decode error: %v", err)
		return nil
	}
	log.Println("replay done:", len(entries), "items")
	return entries
}

// SaveHistory stores the complete history.
func (s *Store) SaveHistory(entries []history.Entry) error {
	v, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.put(keyHistory, v)
}

func (s *Store) get(key string) ([]byte, error) {
	var v []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		// Values are only valid inside the transaction.
		v = append([]byte(nil), b.Get([]byte(key))...)
		return nil
	})
	return v, err
}

func (s *Store) put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

// decodeHistory parses a stored history list. Empty input is an empty list.
func decodeHistory(data []byte) ([]history.Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
