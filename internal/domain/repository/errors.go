package repository

import "errors"

var (
	// ErrNotFound - запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate - нарушено ограничение уникальности кода в пределах родителя
	ErrDuplicate = errors.New("duplicate code in scope")

	// ErrAmbiguous - код встречается у нескольких родителей, требуется код родителя
	ErrAmbiguous = errors.New("code is ambiguous without parent code")
)
