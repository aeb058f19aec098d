// Package photostore persists submitted photo evidence. The api layer
// saves decoded image bytes here and the forensics view fetches them back
// for metadata re-extraction.
package photostore

import "fmt"

var ErrPhotoNotFound = fmt.Errorf("photo not found")

type PhotoStore interface {
	Save(data []byte) (storageKey string, err error)
	Fetch(storageKey string) ([]byte, error)
	Delete(storageKey string) error
}
