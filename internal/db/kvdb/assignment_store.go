// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

const bucketAssignment = "assignment_store"

func NewAssignmentStore(db *bolt.DB) (*AssignmentStore, error) {
	return &AssignmentStore{db: db}, resetBucket(db, bucketAssignment)
}

type AssignmentStore struct {
	db *bolt.DB
}

func (a *AssignmentStore) InitAssignment(ctx context.Context, eventID model.EventID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "InitAssignment")
	defer span.End()

	j, err := json.Marshal(&model.Assignment{EventID: eventID, VendorIDs: []model.VendorID{}})
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return a.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketAssignment))
		key := itob(int64(eventID))
		if bucket.Get(key) != nil {
			return nil
		}
		return bucket.Put(key, j)
	})
}

func (a *AssignmentStore) GetAssignment(ctx context.Context, eventID model.EventID) (*model.Assignment, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetAssignment")
	defer span.End()

	span.AddEvent("View bucket")
	assign := &model.Assignment{}
	err := a.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketAssignment)).Get(itob(int64(eventID)))
		if res == nil {
			err := fmt.Errorf("%w: no assignment for %d", model.ErrEventNotFound, eventID)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, assign)
	})
	if err != nil {
		return nil, err
	}
	return assign, nil
}

func (a *AssignmentStore) UpdateAssignment(ctx context.Context, assign *model.Assignment) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateAssignment")
	defer span.End()

	j, err := json.Marshal(assign)
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return a.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketAssignment))
		key := itob(int64(assign.EventID))
		if bucket.Get(key) == nil {
			err := fmt.Errorf("%w: no assignment for %d", model.ErrEventNotFound, assign.EventID)
			span.RecordError(err)
			return err
		}
		return bucket.Put(key, j)
	})
}
