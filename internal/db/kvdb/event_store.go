// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

const bucketEvent = "event_store"

func NewEventStore(db *bolt.DB) (*EventStore, error) {
	return &EventStore{db: db}, resetBucket(db, bucketEvent)
}

type EventStore struct {
	db *bolt.DB
}

func (e *EventStore) CreateEvent(ctx context.Context, name, date string) (*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateEvent")
	defer span.End()

	event := &model.Event{Name: name, Date: date}
	span.AddEvent("Update bucket")
	return event, e.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEvent))
		seq, err := bucket.NextSequence()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		event.ID = model.EventID(seq)
		j, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return bucket.Put(itob(int64(event.ID)), j)
	})
}

func (e *EventStore) GetEventByID(ctx context.Context, id model.EventID) (*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetEventByID")
	defer span.End()

	span.AddEvent("View bucket")
	event := &model.Event{}
	err := e.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketEvent)).Get(itob(int64(id)))
		if res == nil {
			err := fmt.Errorf("%w: %d", model.ErrEventNotFound, id)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (e *EventStore) ListEvents(ctx context.Context) ([]*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListEvents")
	defer span.End()

	span.AddEvent("View bucket")
	var events []*model.Event
	return events, e.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketEvent)).ForEach(func(_, v []byte) error {
			event := &model.Event{}
			if err := json.Unmarshal(v, event); err != nil {
				span.RecordError(err)
				return err
			}
			events = append(events, event)
			return nil
		})
	})
}
