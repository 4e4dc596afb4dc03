// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package form

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/quixsi/planner/internal/model"
)

type TestStruct struct {
	UUIDField     uuid.UUID      `form:"uuid_field"`
	StringField   string         `form:"string_field"`
	BoolField     bool           `form:"bool_field"`
	IntField      int            `form:"int_field"`
	VendorField   model.VendorID `form:"vendor_field"`
	FloatField    float64        `form:"float_field"`
	SliceField    []string       `form:"slice_field"`
	CategoryField model.Category `form:"category_field"`
	Ignored       string         `form:"-"`
}

func TestUnmarshal(t *testing.T) {
	testCases := []struct {
		name        string
		input       url.Values
		expected    TestStruct
		expectedErr bool
	}{
		{
			name: "Valid input data",
			input: url.Values{
				"uuid_field":     {"ca07d617-c87c-4ac3-affc-27a5e941b28f"},
				"string_field":   {"test_string"},
				"bool_field":     {"true"},
				"int_field":      {"42"},
				"vendor_field":   {"9007199254740993"},
				"float_field":    {"3.14"},
				"slice_field":    {"1", "2", "3"},
				"category_field": {"Photography"},
				"-":              {"nope"},
			},
			expected: TestStruct{
				UUIDField:     uuid.MustParse("ca07d617-c87c-4ac3-affc-27a5e941b28f"),
				StringField:   "test_string",
				BoolField:     true,
				IntField:      42,
				VendorField:   9007199254740993,
				FloatField:    3.14,
				SliceField:    []string{"1", "2", "3"},
				CategoryField: model.CategoryPhotography,
			},
			expectedErr: false,
		},
		{
			name:        "Empty input",
			input:       url.Values{},
			expected:    TestStruct{},
			expectedErr: false,
		},
		{
			name: "Missing fields",
			input: url.Values{
				"string_field": {"test_string"},
				"int_field":    {""},
			},
			expected: TestStruct{
				StringField: "test_string",
			},
			expectedErr: false,
		},
		{
			name: "Invalid int",
			input: url.Values{
				"vendor_field": {"abc"},
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var target TestStruct
			err := Unmarshal(tc.input, &target)
			if (err != nil) != tc.expectedErr {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.expectedErr {
				return
			}
			if !reflect.DeepEqual(target, tc.expected) {
				t.Errorf("Unmarshal did not produce expected result. got: %+v, expected: %+v", target, tc.expected)
			}
		})
	}
}

func TestUnmarshal_UnknownCategory(t *testing.T) {
	var target TestStruct
	err := Unmarshal(url.Values{"category_field": {"Juggling"}}, &target)
	if !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestUnmarshal_NonPointer(t *testing.T) {
	var target TestStruct
	err := Unmarshal(url.Values{}, target)
	var invalid *InvalidUnmarshalError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUnmarshalError, got %v", err)
	}
}
