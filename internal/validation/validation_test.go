package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		errMsg  string
		wantErr bool
	}{
		{name: "simple", id: "alice"},
		{name: "room with dash", id: "lecture-42"},
		{name: "uuid", id: "b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5"},
		{name: "dots and colons", id: "course.101:week_3"},
		{name: "single char", id: "a"},
		{name: "max length", id: strings.Repeat("a", MaxIDLen)},
		{name: "empty", id: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too long", id: strings.Repeat("a", MaxIDLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "leading dash", id: "-room", wantErr: true, errMsg: "can only contain"},
		{name: "space", id: "my room", wantErr: true, errMsg: "can only contain"},
		{name: "slash", id: "a/b", wantErr: true, errMsg: "can only contain"},
		{name: "cyrillic", id: "комната", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("room id", tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Contains(t, err.Error(), "room id")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUserName(t *testing.T) {
	assert.NoError(t, ValidateUserName(""))
	assert.NoError(t, ValidateUserName("Анна Петрова"))
	assert.NoError(t, ValidateUserName(strings.Repeat("я", MaxUserNameLen)))
	assert.Error(t, ValidateUserName(strings.Repeat("я", MaxUserNameLen+1)))
	assert.Error(t, ValidateUserName(string([]byte{0xff, 0xfe})))
}

func TestValidatePassphrase(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		wantErr    bool
	}{
		{name: "valid", passphrase: "correct horse"},
		{name: "exact minimum", passphrase: "12345678"},
		{name: "unicode counts runes", passphrase: "пароль12"},
		{name: "empty", passphrase: "", wantErr: true},
		{name: "too short", passphrase: "1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassphrase(tt.passphrase)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
