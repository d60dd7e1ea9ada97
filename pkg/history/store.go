// Package history keeps a local archive of trend fits so slope drift across
// repeated runs over growing pmrep exports stays visible.
package history

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Store is the contract for the run-history archive
type Store interface {
	// Append records a completed fit and a snapshot of the series it was
	// fitted on
	Append(ctx context.Context, rec *types.FitRecord, observed *types.Series) error

	// List returns fits newest-first, optionally filtered by metric.
	// limit <= 0 means no limit.
	List(ctx context.Context, metric string, limit int) ([]types.FitRecord, error)

	// Snapshot retrieves the series a past fit was computed on
	Snapshot(ctx context.Context, metric string, fittedAt time.Time) (*types.Series, error)

	// Metrics lists every metric that has at least one recorded fit
	Metrics(ctx context.Context) ([]string, error)

	// Close closes the store
	Close() error
}

// Config holds archive configuration
type Config struct {
	Path             string
	CompressionLevel int
}

// DefaultConfig returns default archive configuration
func DefaultConfig() *Config {
	return &Config{
		Path:             "./history",
		CompressionLevel: 3,
	}
}

// Key prefixes. Fit and snapshot keys end in a big-endian fitted-at stamp
// so badger's key order is chronological per metric.
const (
	prefixFit    = "fit/"
	prefixSnap   = "snap/"
	prefixMetric = "metric/"
)

// badgerStore implements Store using BadgerDB
type badgerStore struct {
	cfg        *Config
	db         *badger.DB
	compressor *Compressor
}

// Open opens (creating if needed) the archive at cfg.Path
func Open(cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil // badger's own logging is noise in a CLI

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history archive: %w", err)
	}

	compressor, err := NewCompressor(cfg.CompressionLevel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	return &badgerStore{cfg: cfg, db: db, compressor: compressor}, nil
}

func fitKey(metric string, at time.Time) []byte  { return timedKey(prefixFit, metric, at) }
func snapKey(metric string, at time.Time) []byte { return timedKey(prefixSnap, metric, at) }
func metricKey(metric string) []byte             { return []byte(prefixMetric + metric) }

func timedKey(prefix, metric string, at time.Time) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(prefix)
	buf.WriteString(metric)
	buf.WriteByte('/')
	binary.Write(buf, binary.BigEndian, at.UnixNano())
	return buf.Bytes()
}

// Append implements Store.Append
func (s *badgerStore) Append(ctx context.Context, rec *types.FitRecord, observed *types.Series) error {
	recBytes, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal fit record: %w", err)
	}

	snap, err := s.compressor.EncodeSeries(observed.Samples)
	if err != nil {
		return fmt.Errorf("failed to compress series snapshot: %w", err)
	}
	snapBytes, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(fitKey(rec.Metric, rec.FittedAt), recBytes); err != nil {
			return err
		}
		if err := txn.Set(snapKey(rec.Metric, rec.FittedAt), snapBytes); err != nil {
			return err
		}
		return txn.Set(metricKey(rec.Metric), nil)
	})
}

// List implements Store.List
func (s *badgerStore) List(ctx context.Context, metric string, limit int) ([]types.FitRecord, error) {
	prefix := []byte(prefixFit)
	if metric != "" {
		prefix = []byte(prefixFit + metric + "/")
	}

	var records []types.FitRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode, seek to just past the prefix range
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec types.FitRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to decode fit record: %w", err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Snapshot implements Store.Snapshot
func (s *badgerStore) Snapshot(ctx context.Context, metric string, fittedAt time.Time) (*types.Series, error) {
	var payloadBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapKey(metric, fittedAt))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			payloadBytes = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("no snapshot for %s at %s: %w", metric, fittedAt, err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	samples, err := s.compressor.DecodeSeries(&payload)
	if err != nil {
		return nil, err
	}
	return &types.Series{Metric: metric, Samples: samples}, nil
}

// Metrics implements Store.Metrics
func (s *badgerStore) Metrics(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixMetric)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Close implements Store.Close
func (s *badgerStore) Close() error {
	if s.compressor != nil {
		s.compressor.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
