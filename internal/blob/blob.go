package blob

import (
	"errors"
	"path"
	"time"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrExists   = errors.New("object already exists")
)

type ObjectInfo struct {
	Name      string
	UpdatedAt time.Time
}

// Store is the key-value object store the reconciler runs against. Create
// must fail with ErrExists when an object is already present at the name;
// that create-only write is the only commit gate the apply path has.
type Store interface {
	Get(name string) ([]byte, error)
	Put(name string, data []byte) error
	Create(name string, data []byte) error
	List(prefix string) ([]ObjectInfo, error)
	Delete(name string) error
}

func DeliverySetPath(account, baseName string) string {
	return path.Join("accounts", account, "deliveries", baseName+".json")
}

func SnapshotPath(account string) string {
	return path.Join("accounts", account, "stock", "snapshot.json")
}

func MarkerPath(account, baseName string) string {
	return path.Join("accounts", account, "stock", "applied", baseName+".json")
}

func MarkerPrefix(account string) string {
	return path.Join("accounts", account, "stock", "applied") + "/"
}
