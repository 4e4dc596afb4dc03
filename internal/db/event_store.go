// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/planner/internal/model"
)

type EventStore interface {
	CreateEvent(ctx context.Context, name, date string) (*model.Event, error)
	GetEventByID(context.Context, model.EventID) (*model.Event, error)
	ListEvents(context.Context) ([]*model.Event, error)
}
