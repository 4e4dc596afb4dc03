// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

const bucketVendor = "vendor_store"

func NewVendorStore(db *bolt.DB) (*VendorStore, error) {
	return &VendorStore{db: db}, resetBucket(db, bucketVendor)
}

type VendorStore struct {
	db *bolt.DB
}

func (v *VendorStore) CreateVendor(ctx context.Context, name string, category model.Category) (*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateVendor")
	defer span.End()

	vendor := &model.Vendor{Name: name, Category: category}
	span.AddEvent("Update bucket")
	return vendor, v.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketVendor))
		seq, err := bucket.NextSequence()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		vendor.ID = model.VendorID(seq)
		j, err := json.Marshal(vendor)
		if err != nil {
			return err
		}
		return bucket.Put(itob(int64(vendor.ID)), j)
	})
}

func (v *VendorStore) UpdateVendor(ctx context.Context, vendor *model.Vendor) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateVendor")
	defer span.End()

	if vendor.ID == 0 {
		err := errors.New("vendor ID is required for updating")
		span.RecordError(err)
		return err
	}

	j, err := json.Marshal(vendor)
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return v.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketVendor))
		key := itob(int64(vendor.ID))
		if bucket.Get(key) == nil {
			err := fmt.Errorf("%w: %d", model.ErrVendorNotFound, vendor.ID)
			span.RecordError(err)
			return err
		}
		return bucket.Put(key, j)
	})
}

func (v *VendorStore) DeleteVendor(ctx context.Context, id model.VendorID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteVendor")
	defer span.End()

	span.AddEvent("Update bucket")
	return v.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVendor)).Delete(itob(int64(id)))
	})
}

func (v *VendorStore) GetVendorByID(ctx context.Context, id model.VendorID) (*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetVendorByID")
	defer span.End()

	span.AddEvent("View bucket")
	vendor := &model.Vendor{}
	err := v.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketVendor)).Get(itob(int64(id)))
		if res == nil {
			err := fmt.Errorf("%w: %d", model.ErrVendorNotFound, id)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, vendor)
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (v *VendorStore) ListVendors(ctx context.Context) ([]*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListVendors")
	defer span.End()

	span.AddEvent("View bucket")
	var vendors []*model.Vendor
	return vendors, v.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVendor)).ForEach(func(_, val []byte) error {
			vendor := &model.Vendor{}
			if err := json.Unmarshal(val, vendor); err != nil {
				span.RecordError(err)
				return err
			}
			vendors = append(vendors, vendor)
			return nil
		})
	})
}
