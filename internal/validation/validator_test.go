// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

type prefFixture struct {
	Category string `json:"category" validate:"notblank"`
	Rank     int    `json:"rank" validate:"gte=1,lte=9"`
}

type planFixture struct {
	Budget      float64       `json:"budget" validate:"gte=5,lte=500"`
	Mode        string        `json:"mode" validate:"omitempty,oneof=single-unit quantity budget-only"`
	Categories  []string      `json:"categories" validate:"max=9"`
	Preferences []prefFixture `json:"preferences" validate:"dive"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input planFixture
	}{
		{
			name:  "minimum budget",
			input: planFixture{Budget: 5},
		},
		{
			name: "full request",
			input: planFixture{
				Budget:      120,
				Mode:        "quantity",
				Categories:  []string{"Produce", "Dairy"},
				Preferences: []prefFixture{{Category: "Produce", Rank: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     planFixture
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "budget below minimum",
			input:     planFixture{Budget: 1},
			wantField: "budget",
			wantTag:   "gte",
			wantMsg:   "budget must be greater than or equal to 5",
		},
		{
			name:      "budget above maximum",
			input:     planFixture{Budget: 900},
			wantField: "budget",
			wantTag:   "lte",
			wantMsg:   "budget must be less than or equal to 500",
		},
		{
			name:      "unknown mode",
			input:     planFixture{Budget: 10, Mode: "knapsack"},
			wantField: "mode",
			wantTag:   "oneof",
			wantMsg:   "mode must be one of: single-unit quantity budget-only",
		},
		{
			name: "too many categories",
			input: planFixture{
				Budget:     10,
				Categories: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			},
			wantField: "categories",
			wantTag:   "max",
			wantMsg:   "categories must contain at most 9 entries",
		},
		{
			name: "blank category in preference",
			input: planFixture{
				Budget:      10,
				Preferences: []prefFixture{{Category: "  ", Rank: 1}},
			},
			wantField: "category",
			wantTag:   "notblank",
			wantMsg:   "category must not be blank",
		},
		{
			name: "rank out of range",
			input: planFixture{
				Budget:      10,
				Preferences: []prefFixture{{Category: "Meat", Rank: 10}},
			},
			wantField: "rank",
			wantTag:   "lte",
			wantMsg:   "rank must be less than or equal to 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

// ===================================================================================================
// APIError Conversion Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&planFixture{Budget: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != CodeValidationFailed {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationFailed)
	}
	if apiErr.Details["field"] != "budget" {
		t.Errorf("Details[field] = %v, want budget", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&planFixture{Budget: 0, Mode: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field details, got %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "budget") || !strings.Contains(apiErr.Message, "mode") {
		t.Errorf("Message = %q, want both fields mentioned", apiErr.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	var ve RequestValidationError
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", ve.ToAPIError().Message)
	}
}
