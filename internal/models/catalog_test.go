package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddDishRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddDishRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			req:     AddDishRequest{Name: "Paella", CategoryID: 2, UnitPrice: decimal.RequireFromString("12.50")},
			wantErr: false,
		},
		{
			name:    "missing name",
			req:     AddDishRequest{CategoryID: 2, UnitPrice: decimal.RequireFromString("12.50")},
			wantErr: true,
		},
		{
			name:    "name too long",
			req:     AddDishRequest{Name: strings.Repeat("a", 101), CategoryID: 2, UnitPrice: decimal.RequireFromString("12.50")},
			wantErr: true,
		},
		{
			name:    "missing category",
			req:     AddDishRequest{Name: "Paella", UnitPrice: decimal.RequireFromString("12.50")},
			wantErr: true,
		},
		{
			name:    "missing price",
			req:     AddDishRequest{Name: "Paella", CategoryID: 2},
			wantErr: true,
		},
		{
			name:    "negative price",
			req:     AddDishRequest{Name: "Paella", CategoryID: 2, UnitPrice: decimal.RequireFromString("-1")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
