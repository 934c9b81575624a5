package repository

import "errors"

// Ошибки уровня хранилища.
var (
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrUserExists      = errors.New("пользователь с таким email уже существует")
	ErrReviewNotFound  = errors.New("отзыв не найден")
	ErrCommentNotFound = errors.New("комментарий не найден")
	ErrAddressNotFound = errors.New("адрес не найден")
	ErrAddressExists   = errors.New("такой адрес уже сохранён")
)
