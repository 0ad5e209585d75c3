package statistic

import (
	"os"

	json "github.com/goccy/go-json"

	"chantd/internal/models"
	"chantd/internal/providers"
	"chantd/internal/services"
	"chantd/internal/statistic/interfaces"
)

// SnapshotManager exports the aggregator state to a zstd-compressed JSON
// file and imports it back. The snapshot is a backup of the database, not
// the primary store; every mutation is already persisted row by row.
type SnapshotManager struct {
	service    services.StatsServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, service services.StatsServiceInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (m *SnapshotManager) SaveToFile(fileName string) error {
	snap := m.service.GetSnapshot()

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile reads a snapshot, or (nil, nil) when no file exists.
// Version 1 files carry no version marker; they decode into the same
// envelope and are accepted as long as the daily map is present.
func (m *SnapshotManager) LoadFromFile(fileName string) (*models.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return nil, err
	}
	if snap.Version == 0 {
		if snap.Daily == nil {
			m.logger.Warnf(providers.TypeApp, "Snapshot %s has no usable payload", fileName)
			return nil, nil
		}
		m.logger.Warnf(providers.TypeApp, "Migrated v1 snapshot %s", fileName)
	}
	if snap.Daily == nil {
		snap.Daily = make(map[string]int)
	}
	return &snap, nil
}

func (m *SnapshotManager) Close() {
	m.compressor.Close()
}
