package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "letter name",
			text:    "ay",
			wantErr: false,
		},
		{
			name:    "example phrase",
			text:    "A is for Apple",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "punctuation only",
			text:    "?!",
			wantErr: true,
			errMsg:  "text must contain letters or digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateText() error = %v, want error containing %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}
