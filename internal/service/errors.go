package service

import "errors"

// Ошибки бизнес-логики, транслируемые обработчиками в коды ответов.
var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrAccountDisabled    = errors.New("аккаунт заблокирован")
	ErrEmailTaken         = errors.New("email уже зарегистрирован")
	ErrBadVerification    = errors.New("код подтверждения неверен или истёк")
	ErrInvalidAction      = errors.New("недопустимое действие")
)
