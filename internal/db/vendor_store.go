// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/planner/internal/model"
)

type VendorStore interface {
	CreateVendor(ctx context.Context, name string, category model.Category) (*model.Vendor, error)
	UpdateVendor(context.Context, *model.Vendor) error
	DeleteVendor(context.Context, model.VendorID) error
	GetVendorByID(context.Context, model.VendorID) (*model.Vendor, error)
	ListVendors(context.Context) ([]*model.Vendor, error)
}
