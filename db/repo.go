package db

import (
	"errors"

	"gorm.io/gorm"
)

// 业务错误，controllers 负责映射到 HTTP 状态码
var (
	ErrAlreadyOnLoan = errors.New("equipment already on loan")
	ErrAlreadyClosed = errors.New("loan already closed")
	ErrModelDisposed = errors.New("model is disposed")
	ErrNoSnapshot    = errors.New("no snapshot for year")
	ErrNotInManifest = errors.New("equipment not in manifest")
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }
