package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabworks/cardstand/internal/domain"
)

const maxCardNameLength = 200

type testCardStruct struct {
	Status     string `validate:"cardstatus"`
	Name       string `validate:"required,max=200,excludesall=\x00\n\r\t"`
	PriceCents int64  `validate:"gt=0"`
}

func TestValidator_CardStatusValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"available", string(domain.StatusAvailable), false},
		{"pending", string(domain.StatusPending), false},
		{"sold", string(domain.StatusSold), false},

		// Empty allowed when not required
		{"empty status allowed", "", false},

		// Case insensitive
		{"uppercase status", "AVAILABLE", false},

		{"unknown status", "vaulted", true},
		{"typo", "avilable", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testCardStruct{
				Status:     tt.status,
				Name:       "Charizard",
				PriceCents: 42500,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_CardNameValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		cardName string
		wantErr  bool
	}{
		{"valid name", "Charizard", false},
		{"with spaces", "Black Lotus", false},
		{"with punctuation", "Jace, the Mind Sculptor", false},

		{"one char (just inside)", "a", false},
		{"exactly max length", strings.Repeat("a", maxCardNameLength), false},
		{"over max length", strings.Repeat("a", maxCardNameLength+1), true},

		{"empty name", "", true},
		{"with newline", "Chari\nzard", true},
		{"with tab", "Chari\tzard", true},
		{"with null byte", "Chari\x00zard", true},
		{"with carriage return", "Chari\rzard", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testCardStruct{
				Status:     string(domain.StatusAvailable),
				Name:       tt.cardName,
				PriceCents: 42500,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_PriceValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		price   int64
		wantErr bool
	}{
		{"one cent", 1, false},
		{"typical price", 42500, false},

		{"zero price", 0, true},
		{"negative price", -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testCardStruct{
				Status:     string(domain.StatusAvailable),
				Name:       "Charizard",
				PriceCents: tt.price,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("non-validation error", func(t *testing.T) {
		errs := FormatValidationError(assert.AnError)
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("field errors", func(t *testing.T) {
		err := v.ValidateStruct(testCardStruct{Status: "vaulted"})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, "This field is required", errs["name"])
		assert.Equal(t, "Invalid card status", errs["status"])
	})
}
