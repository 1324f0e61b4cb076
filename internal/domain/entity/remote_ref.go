package entity

// RemoteRef identifies an artifact copied to an object store.
type RemoteRef struct {
	Provider string `json:"provider"`
	Bucket   string `json:"bucket"`
	Object   string `json:"object"`
	URI      string `json:"uri"`
}
