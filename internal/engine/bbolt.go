package engine

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"time"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
	"github.com/gokvs/kvs/pkg/options"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ErrSledEngineClosed is returned by every operation once Close has run.
var ErrSledEngineClosed = errors.New("operation failed: cannot access closed engine")

var bucketName = []byte("kvs")

const sledFileName = "sled.db"

// sledEngine is the embedded third-party backend: a single bbolt database
// file holding one bucket of key/value pairs. Per spec §9 it flushes after
// every mutation to match the native engine's durability model, even though
// bbolt already fsyncs its own transactions by default — the call makes
// that guarantee explicit rather than relying on an implementation detail.
type sledEngine struct {
	db     *bolt.DB
	log    *zap.SugaredLogger
	closed atomic.Bool
}

func openSledEngine(opts *options.Options, log *zap.SugaredLogger) (*sledEngine, error) {
	path := filepath.Join(opts.DataDir, sledFileName)

	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, kvserrors.NewIOError(err, "failed to open sled engine database").WithPath(path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, kvserrors.NewIOError(err, "failed to initialize sled engine bucket").WithPath(path)
	}

	return &sledEngine{db: db, log: log}, nil
}

func (e *sledEngine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrSledEngineClosed
	}

	err := e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return kvserrors.NewIOError(err, "failed to write key to sled engine")
	}

	return e.db.Sync()
}

func (e *sledEngine) Get(key string) (string, error) {
	if e.closed.Load() {
		return "", ErrSledEngineClosed
	}

	var value []byte
	err := e.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", kvserrors.NewIOError(err, "failed to read key from sled engine")
	}

	if value == nil {
		return "", kvserrors.NewKeyNotFoundError(key)
	}
	return string(value), nil
}

func (e *sledEngine) Remove(key string) error {
	if e.closed.Load() {
		return ErrSledEngineClosed
	}

	var existed bool
	err := e.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		existed = b.Get([]byte(key)) != nil
		if !existed {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return kvserrors.NewIOError(err, "failed to remove key from sled engine")
	}
	if !existed {
		return kvserrors.NewKeyNotFoundError(key)
	}

	return e.db.Sync()
}

func (e *sledEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrSledEngineClosed
	}
	return e.db.Close()
}
