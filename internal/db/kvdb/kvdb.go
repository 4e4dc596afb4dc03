// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"encoding/binary"
	"errors"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/quixsi/planner/internal/db/kvdb")

// resetBucket drops and recreates name so a store always starts a session empty.
func resetBucket(db *bolt.DB, name string) error {
	return db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket([]byte(name))
		return err
	})
}

// itob encodes ids big-endian so cursor order equals creation order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
