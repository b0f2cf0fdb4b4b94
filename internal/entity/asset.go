package entity

import "errors"

// AssetKind é a classificação feita no upload, só pelo content type declarado.
type AssetKind string

const (
	AssetImage    AssetKind = "image"
	AssetDocument AssetKind = "document"
)

// UploadedAsset não é persistido; a URL pública vai como string no conteúdo
// que a referencia.
type UploadedAsset struct {
	FileURL  string    `json:"fileUrl"`
	FileName string    `json:"fileName"`
	FileSize string    `json:"fileSize"`
	FileType string    `json:"fileType"`
	Kind     AssetKind `json:"-"`
}

var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrBucketExists   = errors.New("bucket already exists")
)
