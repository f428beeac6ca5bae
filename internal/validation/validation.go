package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// IDPattern определяет допустимый формат идентификаторов пользователей и комнат
// Латинские буквы, цифры и символы _ . : -, первый символ буква или цифра
var IDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:-]*$`)

const (
	// MaxIDLen максимальная длина идентификатора
	MaxIDLen = 128
	// MinPassphraseLen минимальная длина пароля локального хранилища
	MinPassphraseLen = 8
	// MaxUserNameLen максимальная длина отображаемого имени
	MaxUserNameLen = 64
)

// ValidateID checks a user or room identifier. kind names the identifier
// in the error message.
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}

	if len(id) > MaxIDLen {
		return fmt.Errorf("%s must not exceed %d characters", kind, MaxIDLen)
	}

	if !IDPattern.MatchString(id) {
		return fmt.Errorf("%s can only contain letters, numbers and _ . : -", kind)
	}

	return nil
}

// ValidateUserName checks a display name: any printable text up to
// MaxUserNameLen characters, empty allowed.
func ValidateUserName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("user name must be valid UTF-8")
	}
	if utf8.RuneCountInString(name) > MaxUserNameLen {
		return fmt.Errorf("user name must not exceed %d characters", MaxUserNameLen)
	}
	return nil
}

// ValidatePassphrase проверяет минимальные требования к паролю нового
// зашифрованного хранилища
func ValidatePassphrase(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase cannot be empty")
	}

	if utf8.RuneCountInString(passphrase) < MinPassphraseLen {
		return fmt.Errorf("passphrase must be at least %d characters long", MinPassphraseLen)
	}

	return nil
}
