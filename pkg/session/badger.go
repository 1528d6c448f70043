package session

import (
	"context"
	"encoding/json"
	"log"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// sessionKeyPrefix namespaces session records inside the database.
const sessionKeyPrefix = "session:"

// BadgerStore is a Store backed by BadgerDB, giving sessions durability
// across process restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB-backed store in dir. Pass
// inMemory true to run the real badger engine without disk persistence,
// which is useful in tests.
func NewBadgerStore(dir string, inMemory bool) (store *BadgerStore, err error) {
	if !inMemory && dir == "" {
		err = errors.New("session store directory is required for on-disk mode")
		return store, err
	}

	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	opts = opts.WithLogger(quietLogger{})

	var db *badger.DB
	db, err = badger.Open(opts)
	if err != nil {
		err = errors.Wrapf(err, "failed to open session store: %s", dir)
		return store, err
	}

	store = &BadgerStore{db: db}
	return store, err
}

// Get retrieves a session snapshot by id.
func (b *BadgerStore) Get(_ context.Context, id string) (sess Session, err error) {
	var raw []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, viewErr := txn.Get([]byte(sessionKeyPrefix + id))
		if viewErr != nil {
			return viewErr
		}
		raw, viewErr = item.ValueCopy(nil)
		return viewErr
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		err = ErrNotFound
		return sess, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read session: %s", id)
		return sess, err
	}

	err = json.Unmarshal(raw, &sess)
	if err != nil {
		err = errors.Wrapf(err, "failed to decode session: %s", id)
		return sess, err
	}

	return sess, err
}

// Put stores a session snapshot, overwriting any previous one.
func (b *BadgerStore) Put(_ context.Context, sess Session) (err error) {
	var raw []byte
	raw, err = json.Marshal(sess)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode session: %s", sess.ID)
		return err
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionKeyPrefix+sess.ID), raw)
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to write session: %s", sess.ID)
		return err
	}

	return err
}

// Exists reports whether a session with the given id is stored.
func (b *BadgerStore) Exists(_ context.Context, id string) (found bool, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		_, viewErr := txn.Get([]byte(sessionKeyPrefix + id))
		return viewErr
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to check session: %s", id)
		return found, err
	}

	found = true
	return found, err
}

// Close closes the underlying database.
func (b *BadgerStore) Close() (err error) {
	err = b.db.Close()
	return err
}

// quietLogger suppresses badger's info and debug output.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Printf("[badger] WARN: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
