package models

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    OrderStatus
		wantErr bool
	}{
		{name: "confirming", raw: "Confirming", want: StatusConfirming},
		{name: "preparing", raw: "Preparing", want: StatusPreparing},
		{name: "ready", raw: "Ready", want: StatusReady},
		{name: "unknown value", raw: "Delivered", wantErr: true},
		{name: "wrong case", raw: "confirming", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrderStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseOrderStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateOrderRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &CreateOrderRequest{
				Customer: "b3b6cfb9-5a3f-4a51-9c5d-63c0e29f1e01",
				Pizzas:   []string{"dcca326e-9a0b-4aae-8db0-e23bd2b3c0a2"},
			},
			wantErr: false,
		},
		{
			name: "valid with explicit status",
			req: &CreateOrderRequest{
				Customer: "b3b6cfb9-5a3f-4a51-9c5d-63c0e29f1e01",
				Pizzas:   []string{"dcca326e-9a0b-4aae-8db0-e23bd2b3c0a2"},
				Status:   "Preparing",
			},
			wantErr: false,
		},
		{
			name: "missing customer",
			req: &CreateOrderRequest{
				Pizzas: []string{"dcca326e-9a0b-4aae-8db0-e23bd2b3c0a2"},
			},
			wantErr: true,
		},
		{
			name: "empty pizza list",
			req: &CreateOrderRequest{
				Customer: "b3b6cfb9-5a3f-4a51-9c5d-63c0e29f1e01",
				Pizzas:   []string{},
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			req: &CreateOrderRequest{
				Customer: "b3b6cfb9-5a3f-4a51-9c5d-63c0e29f1e01",
				Pizzas:   []string{"dcca326e-9a0b-4aae-8db0-e23bd2b3c0a2"},
				Status:   "Cancelled",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateOrderRequest_Validate(t *testing.T) {
	preparing := "Preparing"
	invalid := "Done"
	empty := ""

	tests := []struct {
		name    string
		req     *UpdateOrderRequest
		wantErr bool
	}{
		{name: "status only", req: &UpdateOrderRequest{Status: &preparing}, wantErr: false},
		{name: "no fields", req: &UpdateOrderRequest{}, wantErr: true},
		{name: "invalid status", req: &UpdateOrderRequest{Status: &invalid}, wantErr: true},
		{name: "empty customer", req: &UpdateOrderRequest{Customer: &empty}, wantErr: true},
		{name: "empty pizza list", req: &UpdateOrderRequest{Pizzas: []string{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
