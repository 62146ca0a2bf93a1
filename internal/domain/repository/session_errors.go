package repository

import "errors"

var (
	// ErrActiveSessionExists означает, что у пары (user, quiz) уже есть незакрытая сессия.
	ErrActiveSessionExists = errors.New("active exam session already exists")
	// ErrSessionAlreadySubmitted означает, что сессия уже была закрыта ранее.
	ErrSessionAlreadySubmitted = errors.New("exam session is already submitted")
)
