// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package memdb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

func NewVendorStore() *VendorStore {
	return &VendorStore{}
}

type VendorStore struct {
	mu sync.RWMutex

	lastID  model.VendorID
	vendors []*model.Vendor
}

func (v *VendorStore) CreateVendor(ctx context.Context, name string, category model.Category) (*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateVendor")
	defer span.End()

	span.AddEvent("Lock")
	v.mu.Lock()
	defer span.AddEvent("Unlock")
	defer v.mu.Unlock()

	v.lastID++
	vendor := &model.Vendor{ID: v.lastID, Name: name, Category: category}
	v.vendors = append(v.vendors, vendor)
	return vendor.Clone(), nil
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

	span.AddEvent("Lock")
	v.mu.Lock()
	defer span.AddEvent("Unlock")
	defer v.mu.Unlock()

	idx := v.find(vendor.ID)
	if idx < 0 {
		err := fmt.Errorf("%w: %d", model.ErrVendorNotFound, vendor.ID)
		span.RecordError(err)
		return err
	}
	v.vendors[idx] = vendor.Clone()
	return nil
}

func (v *VendorStore) DeleteVendor(ctx context.Context, id model.VendorID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteVendor")
	defer span.End()

	span.AddEvent("Lock")
	v.mu.Lock()
	defer span.AddEvent("Unlock")
	defer v.mu.Unlock()

	if idx := v.find(id); idx >= 0 {
		v.vendors = slices.Delete(v.vendors, idx, idx+1)
	}
	return nil
}

func (v *VendorStore) GetVendorByID(ctx context.Context, id model.VendorID) (*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetVendorByID")
	defer span.End()

	span.AddEvent("RLock")
	v.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer v.mu.RUnlock()

	idx := v.find(id)
	if idx < 0 {
		err := fmt.Errorf("%w: %d", model.ErrVendorNotFound, id)
		span.RecordError(err)
		return nil, err
	}
	return v.vendors[idx].Clone(), nil
}

func (v *VendorStore) ListVendors(ctx context.Context) ([]*model.Vendor, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListVendors")
	defer span.End()

	span.AddEvent("RLock")
	v.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer v.mu.RUnlock()

	res := make([]*model.Vendor, 0, len(v.vendors))
	for _, vendor := range v.vendors {
		res = append(res, vendor.Clone())
	}
	return res, nil
}

// find expects the caller to hold the lock.
func (v *VendorStore) find(id model.VendorID) int {
	return slices.IndexFunc(v.vendors, func(vendor *model.Vendor) bool {
		return vendor.ID == id
	})
}
