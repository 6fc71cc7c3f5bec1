package archive

import "context"

// NullStore is a no-op archive that never stores anything. Used when
// archiving is disabled and in tests.
type NullStore struct{}

// NewNullStore creates a null archive.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Load always reports the record as absent.
func (s *NullStore) Load(ctx context.Context, key string) (*Record, error) {
	return nil, nil
}

// Save discards the record.
func (s *NullStore) Save(ctx context.Context, rec *Record) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

var _ Store = (*NullStore)(nil)
