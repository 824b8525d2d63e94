package store

import (
	"encoding/json"
	"fmt"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// encodeRecord serialises a record for storage. Records without a plan id are rejected.
func encodeRecord(rec models.PlanRecord) ([]byte, error) {
	if rec.Plan.ID == "" {
		return nil, ErrEmptyPlanID
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan %s: %w", rec.Plan.ID, err)
	}
	return data, nil
}

// decodeRecord parses a stored record.
func decodeRecord(data []byte) (models.PlanRecord, error) {
	var rec models.PlanRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.PlanRecord{}, fmt.Errorf("failed to unmarshal plan record: %w", err)
	}
	return rec, nil
}
