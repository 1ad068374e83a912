package server

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestUpsertSectionConfigRequestValidation(t *testing.T) {
	validate := validator.New()
	flavor := "retail"

	tests := []struct {
		name    string
		req     UpsertSectionConfigRequest
		wantErr bool
	}{
		{
			name:    "always with fixed flavor",
			req:     UpsertSectionConfigRequest{Priority: "always", FixedFlavor: &flavor},
			wantErr: false,
		},
		{
			name:    "always without fixed flavor",
			req:     UpsertSectionConfigRequest{Priority: "always"},
			wantErr: true,
		},
		{
			name:    "normal without fixed flavor",
			req:     UpsertSectionConfigRequest{Priority: "normal"},
			wantErr: false,
		},
		{
			name:    "never without fixed flavor",
			req:     UpsertSectionConfigRequest{Priority: "never"},
			wantErr: false,
		},
		{
			name:    "unknown priority",
			req:     UpsertSectionConfigRequest{Priority: "sometimes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
