package service

import (
	"testing"

	"edulure_backend/internal/growth/repository"
)

func TestValidateVariants(t *testing.T) {
	cases := []struct {
		name     string
		variants []repository.Variant
		wantErr  bool
	}{
		{
			name: "valid even split",
			variants: []repository.Variant{
				{Key: "control", Weight: 50},
				{Key: "treatment", Weight: 50},
			},
			wantErr: false,
		},
		{
			name: "valid uneven split",
			variants: []repository.Variant{
				{Key: "control", Weight: 80},
				{Key: "a", Weight: 15},
				{Key: "b", Weight: 5},
			},
			wantErr: false,
		},
		{
			name: "weights under 100",
			variants: []repository.Variant{
				{Key: "control", Weight: 50},
				{Key: "treatment", Weight: 40},
			},
			wantErr: true,
		},
		{
			name: "weights over 100",
			variants: []repository.Variant{
				{Key: "control", Weight: 60},
				{Key: "treatment", Weight: 50},
			},
			wantErr: true,
		},
		{
			name: "zero weight arm",
			variants: []repository.Variant{
				{Key: "control", Weight: 100},
				{Key: "treatment", Weight: 0},
			},
			wantErr: true,
		},
		{
			name: "duplicate keys",
			variants: []repository.Variant{
				{Key: "control", Weight: 50},
				{Key: "control", Weight: 50},
			},
			wantErr: true,
		},
		{
			name: "single arm",
			variants: []repository.Variant{
				{Key: "control", Weight: 100},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateVariants(tc.variants)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateVariants() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
