package photostore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// LocalPhotoStore keeps photos as content-addressed files on disk.
// Identical bytes map to the same key, so a retried submission never
// duplicates its evidence.
type LocalPhotoStore struct {
	basePath string
}

func NewLocalPhotoStore(basePath string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &LocalPhotoStore{basePath: basePath}, nil
}

func (s *LocalPhotoStore) Save(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + ".jpg"
	path := filepath.Join(s.basePath, key)

	if _, err := os.Stat(path); err == nil {
		return key, nil
	}

	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return key, nil
}

func (s *LocalPhotoStore) Fetch(storageKey string) ([]byte, error) {
	path, err := s.safeJoin(storageKey)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

func (s *LocalPhotoStore) Delete(storageKey string) error {
	path, err := s.safeJoin(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// safeJoin rejects keys that would escape the photo directory.
func (s *LocalPhotoStore) safeJoin(storageKey string) (string, error) {
	cleaned := filepath.Clean(storageKey)
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.basePath, cleaned), nil
}
