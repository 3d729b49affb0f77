// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type topRequest struct {
	Order string `validate:"omitempty,oneof=total gold"`
	Limit int    `validate:"min=1,max=50"`
}

type historyRequest struct {
	Country string `validate:"required"`
}

func TestValidateStructPasses(t *testing.T) {
	req := topRequest{Order: "gold", Limit: 10}
	assert.Nil(t, ValidateStruct(&req))
}

func TestValidateStructOmitempty(t *testing.T) {
	req := topRequest{Order: "", Limit: 10}
	assert.Nil(t, ValidateStruct(&req))
}

func TestValidateStructOneof(t *testing.T) {
	req := topRequest{Order: "bronze", Limit: 10}
	verr := ValidateStruct(&req)
	require.NotNil(t, verr)
	require.Len(t, verr.Errors(), 1)

	fieldErr := verr.Errors()[0]
	assert.Equal(t, "Order", fieldErr.Field())
	assert.Equal(t, "oneof", fieldErr.Tag())
	assert.Contains(t, fieldErr.Error(), "must be one of: total gold")
}

func TestValidateStructLimitBounds(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		wantTag string
	}{
		{"below minimum", 0, "min"},
		{"above maximum", 51, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&topRequest{Limit: tt.limit})
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantTag, verr.Errors()[0].Tag())
		})
	}
}

func TestValidateStructRequired(t *testing.T) {
	verr := ValidateStruct(&historyRequest{})
	require.NotNil(t, verr)
	assert.Equal(t, "required", verr.Errors()[0].Tag())
	assert.Equal(t, "Country is required", verr.Errors()[0].Error())
}

func TestValidateStructMultipleErrors(t *testing.T) {
	req := topRequest{Order: "silver", Limit: 0}
	verr := ValidateStruct(&req)
	require.NotNil(t, verr)
	assert.Len(t, verr.Errors(), 2)
	assert.Contains(t, verr.Error(), ";")
}

func TestGetValidatorSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
