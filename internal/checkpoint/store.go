// Package checkpoint is a thin key-value accessor over an embedded LSM store, kept as
// an external collaborator of the transcoder rather than a component of it: it owns no
// ABI semantics and is never on the binary<->value call path.
package checkpoint

import (
	"encoding/binary"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"

	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// keyPrefix distinguishes checkpoint records from any other keyspace sharing the store.
const keyPrefix = 'c'

// Store is a generic ordered key-value mapping with put/get/exists/range-scan
// semantics, grounded on the teacher's badger.Store construction pattern.
type Store struct {
	db     *badgerdb.DB
	logger log.Logger
}

// New constructs an unopened Store; call Init to open the backing database at path.
func New(logger log.Logger) *Store {
	return &Store{logger: logger}
}

// Init opens the badger database at path, creating it if absent.
func (s *Store) Init(path string) bool {
	if err := os.MkdirAll(path, 0o700); err != nil {
		if s.logger != nil {
			s.logger.Errorf("checkpoint: cannot create data directory %s: %v", path, err)
		}
		return false
	}
	opts := badgerdb.DefaultOptions(path)
	opts.Logger = nil
	db, err := badgerdb.Open(opts)
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("checkpoint: cannot open store at %s: %v", path, err)
		}
		return false
	}
	s.db = db
	return true
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func checkpointKey(height uint64) []byte {
	key := make([]byte, 9)
	key[0] = keyPrefix
	binary.BigEndian.PutUint64(key[1:], height)
	return key
}

// Write stores record under height, overwriting any existing entry.
func (s *Store) Write(height uint64, record []byte) bool {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(checkpointKey(height), record)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("checkpoint: write height %d: %v", height, err)
		}
		return false
	}
	return true
}

// Read returns the record stored at height, or (nil, false) on a miss.
func (s *Store) Read(height uint64) ([]byte, bool) {
	var record []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(checkpointKey(height))
		if err != nil {
			return err
		}
		record, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return record, true
}

// Exists reports whether a record is stored at height.
func (s *Store) Exists(height uint64) bool {
	found := false
	_ = s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(checkpointKey(height))
		found = err == nil
		return nil
	})
	return found
}

// LoadAll range-scans every checkpoint key and returns the height -> record mapping.
func (s *Store) LoadAll() (map[uint64][]byte, error) {
	out := make(map[uint64][]byte)
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte{keyPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			height := binary.BigEndian.Uint64(key[1:])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out[height] = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
