// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/planner/internal/model"
)

// AssignmentStore maps an event to the ordered list of its assigned vendors.
type AssignmentStore interface {
	InitAssignment(context.Context, model.EventID) error
	GetAssignment(context.Context, model.EventID) (*model.Assignment, error)
	UpdateAssignment(context.Context, *model.Assignment) error
}
