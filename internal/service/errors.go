package service

import "errors"

// 領域錯誤，handler.Error 依此對應 HTTP 狀態碼
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoadmapNotFound    = errors.New("roadmap not found")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrForbidden          = errors.New("not enough permissions")
	ErrInvalidItemType    = errors.New("invalid item type")
	ErrInvalidCategory    = errors.New("invalid category")
)
