package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddLineItemRequest_Validate(t *testing.T) {
	valid := func() AddLineItemRequest {
		return AddLineItemRequest{
			DishID:           1,
			Quantity:         2,
			OrderedName:      "Paella",
			OrderedUnitPrice: decimal.RequireFromString("12.50"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AddLineItemRequest)
		wantErr bool
	}{
		{"valid request", func(r *AddLineItemRequest) {}, false},
		{"missing dish id", func(r *AddLineItemRequest) { r.DishID = 0 }, true},
		{"missing name", func(r *AddLineItemRequest) { r.OrderedName = "" }, true},
		{"zero price", func(r *AddLineItemRequest) { r.OrderedUnitPrice = decimal.Zero }, true},
		{"negative price", func(r *AddLineItemRequest) { r.OrderedUnitPrice = decimal.RequireFromString("-1") }, true},
		{"negative quantity", func(r *AddLineItemRequest) { r.Quantity = -1 }, true},
		{"zero quantity defaults", func(r *AddLineItemRequest) { r.Quantity = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var validationErr ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestAddLineItemRequest_ZeroQuantityBecomesOne(t *testing.T) {
	req := AddLineItemRequest{
		DishID:           1,
		OrderedName:      "Tortilla",
		OrderedUnitPrice: decimal.RequireFromString("6.00"),
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if req.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", req.Quantity)
	}
}

func TestUpdateTotalRequest_Validate(t *testing.T) {
	zero := decimal.Zero
	positive := decimal.RequireFromString("37.51")
	negative := decimal.RequireFromString("-0.01")

	tests := []struct {
		name    string
		req     UpdateTotalRequest
		wantErr bool
	}{
		{"positive total", UpdateTotalRequest{TotalPrice: &positive}, false},
		{"zero total", UpdateTotalRequest{TotalPrice: &zero}, false},
		{"negative total", UpdateTotalRequest{TotalPrice: &negative}, true},
		{"missing total", UpdateTotalRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	item := OrderLineItem{
		OrderDishID:      7,
		DishID:           1,
		OrderedName:      "Paella",
		OrderedUnitPrice: decimal.RequireFromString("12.50"),
		Quantity:         2,
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if _, ok := decoded["ordered_unit_price"].(float64); !ok {
		t.Errorf("ordered_unit_price serialized as %T, want JSON number", decoded["ordered_unit_price"])
	}
}
