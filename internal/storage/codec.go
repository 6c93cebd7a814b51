package storage

import (
	"encoding/json"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// EncodeRecord serializes a record for storage.
func EncodeRecord(rec *domain.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("encode record").WithCause(err)
	}
	return data, nil
}

// DecodeRecord deserializes a stored record.
func DecodeRecord(data []byte) (*domain.Record, error) {
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, domain.ErrStorage.WithDetails("decode record").WithCause(err)
	}
	return &rec, nil
}
