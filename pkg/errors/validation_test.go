package errors

import (
	"testing"
)

func TestValidateScreenName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "cards", false},
		{"with dash", "nested-profile", false},
		{"with digits", "grid2", false},

		{"empty", "", true},
		{"uppercase", "Cards", true},
		{"trailing dash", "cards-", true},
		{"space", "my screen", true},
		{"path", "../cards", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScreenName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScreenName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScreen) {
				t.Errorf("ValidateScreenName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidScreen)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "screens/cards.toml", false},
		{"absolute", "/etc/flexgrid/cards.toml", false},
		{"dotted name", "my..screen.toml", false},

		{"empty", "", true},
		{"traversal", "screens/../../secret", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"https://picsum.photos/id/1/200/300", false},
		{"http://example.com/a.png", false},
		{"ftp://example.com/a.png", true},
		{"javascript:alert(1)", true},
	}

	for _, tt := range tests {
		err := ValidateImageURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
