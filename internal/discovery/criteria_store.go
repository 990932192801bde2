package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// criteriaRecordVersion tags the stored criteria shape so future field
// migrations can detect old records instead of misreading them.
const criteriaRecordVersion = 1

const criteriaKeyPrefix = "discovery:criteria:"

// criteriaRecord is the versioned envelope persisted per viewer.
type criteriaRecord struct {
	Version   int             `json:"version"`
	Criteria  *FilterCriteria `json:"criteria"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CriteriaStore persists each viewer's active FilterCriteria as one
// structured record in Redis. Load-on-start, save-on-mutate; a viewer
// with no stored record gets the documented defaults.
type CriteriaStore struct {
	client *redis.Client
}

func NewCriteriaStore(client *redis.Client) *CriteriaStore {
	return &CriteriaStore{client: client}
}

// Load returns the viewer's stored criteria, or defaults when nothing
// is stored yet.
func (s *CriteriaStore) Load(ctx context.Context, userID string) (*FilterCriteria, error) {
	if s.client == nil {
		return DefaultFilterCriteria(), nil
	}

	data, err := s.client.Get(ctx, criteriaKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return DefaultFilterCriteria(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load criteria: %w", err)
	}

	var record criteriaRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode criteria record: %w", err)
	}
	if record.Version != criteriaRecordVersion || record.Criteria == nil {
		// Unknown shape: fall back to defaults rather than guessing.
		return DefaultFilterCriteria(), nil
	}
	if err := record.Criteria.Validate(); err != nil {
		return nil, fmt.Errorf("stored criteria invalid: %w", err)
	}
	return record.Criteria, nil
}

// Save writes the viewer's criteria back. Criteria must already be
// valid; Save re-checks as a last line of defense against persisting a
// record Load would later refuse.
func (s *CriteriaStore) Save(ctx context.Context, userID string, criteria *FilterCriteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}
	if s.client == nil {
		return nil
	}

	record := criteriaRecord{
		Version:   criteriaRecordVersion,
		Criteria:  criteria,
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, criteriaKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("save criteria: %w", err)
	}
	return nil
}

// Delete drops the stored record, returning the viewer to defaults.
func (s *CriteriaStore) Delete(ctx context.Context, userID string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, criteriaKeyPrefix+userID).Err()
}
