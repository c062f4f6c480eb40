package models

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrRedisGet        = errors.New("redis get error")
	ErrRedisSet        = errors.New("redis set error")
	ErrRedisDelete     = errors.New("redis delete error")
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionUpdating = errors.New("error updating session")
	ErrVersionConflict = errors.New("session version conflict")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrRecordNotFound     = errors.New("record not found")
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrTenantRequired = errors.New("tenant id is required")
	ErrTenantInvalid  = errors.New("tenant id is malformed")
	ErrEmailInvalid   = errors.New("email is malformed")
)
