package entity

type TableStatus struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Rows   int    `json:"rows"`
}

// BucketStatus é o resultado do provisionamento de um bucket.
type BucketStatus struct {
	Bucket string `json:"bucket"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	BucketCreated       = "created"
	BucketAlreadyExists = "already exists"
	BucketError         = "error"
)
