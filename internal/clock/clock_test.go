// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	now := time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
	c := NewFixed(now)
	if !c.Now().Equal(now) {
		t.Fatalf("got %v, expected %v", c.Now(), now)
	}
}

func TestSystem(t *testing.T) {
	before := time.Now()
	got := NewSystem().Now()
	if got.Before(before) || got.After(time.Now()) {
		t.Fatalf("system clock returned %v", got)
	}
}
