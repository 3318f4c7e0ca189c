package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Media operations

// CreateMedia creates a new media item in the catalog
func (db *Database) CreateMedia(item *MediaItem) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), item)
}

// UpdateMedia updates an existing media item
func (db *Database) UpdateMedia(item *MediaItem) error {
	item.UpdatedAt = time.Now()
	return db.store.Update(item.ID, item)
}

// GetMediaByID retrieves a media item by ID
func (db *Database) GetMediaByID(id uint64) (*MediaItem, error) {
	var item MediaItem
	err := db.store.Get(id, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMediaByPath retrieves a media item by its library-relative path
func (db *Database) GetMediaByPath(path string) (*MediaItem, error) {
	var item MediaItem
	err := db.store.FindOne(&item, bolthold.Where("Path").Eq(path).Index("Path"))
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAllMedia retrieves the full catalog in ordinal order
func (db *Database) GetAllMedia() ([]*MediaItem, error) {
	var items []*MediaItem
	err := db.store.Find(&items, nil)
	if err != nil {
		return nil, err
	}
	sortByOrdinal(items)
	return items, nil
}

// GetEligibleMedia retrieves the filtered catalog for a device in
// ordinal order
func (db *Database) GetEligibleMedia(filter CatalogFilter) ([]*MediaItem, error) {
	all, err := db.GetAllMedia()
	if err != nil {
		return nil, err
	}

	eligible := make([]*MediaItem, 0, len(all))
	for _, item := range all {
		if filter.Matches(item) {
			eligible = append(eligible, item)
		}
	}
	return eligible, nil
}

// DeleteMedia deletes a media item by ID
func (db *Database) DeleteMedia(id uint64) error {
	return db.store.Delete(id, &MediaItem{})
}

func sortByOrdinal(items []*MediaItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}

// Device operations

// SaveDevice inserts or updates a device record
func (db *Database) SaveDevice(device *Device) error {
	now := time.Now()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now
	return db.store.Upsert(device.ID, device)
}

// GetDevice retrieves a device by ID
func (db *Database) GetDevice(id string) (*Device, error) {
	var device Device
	err := db.store.Get(id, &device)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// GetAllDevices retrieves all registered devices
func (db *Database) GetAllDevices() ([]*Device, error) {
	var devices []*Device
	err := db.store.Find(&devices, nil)
	return devices, err
}

// DeleteDevice deletes a device and its epoch record
func (db *Database) DeleteDevice(id string) error {
	if err := db.store.Delete(id, &Device{}); err != nil {
		return err
	}
	// Epoch record may not exist; ignore not-found
	err := db.store.Delete(id, &EpochRecord{})
	if err != nil && err != bolthold.ErrNotFound {
		return err
	}
	return nil
}

// TouchDeviceSeen records a poll from a device. Unknown devices are not
// registered implicitly.
func (db *Database) TouchDeviceSeen(id string, at time.Time) error {
	var device Device
	err := db.store.Get(id, &device)
	if err == bolthold.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	device.LastSeenAt = at
	return db.store.Update(id, &device)
}

// Epoch operations

// GetEpoch retrieves the epoch record for a device
func (db *Database) GetEpoch(deviceID string) (*EpochRecord, error) {
	var record EpochRecord
	err := db.store.Get(deviceID, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SetEpoch stores the epoch record for a device. Upsert runs inside a
// single bolt write transaction, so concurrent first polls settle on
// last-writer-wins.
func (db *Database) SetEpoch(record *EpochRecord) error {
	record.UpdatedAt = time.Now()
	return db.store.Upsert(record.DeviceID, record)
}

// DeleteEpochsWithoutDevice removes epoch records whose device no longer
// exists. Returns the number of records removed.
func (db *Database) DeleteEpochsWithoutDevice() (int, error) {
	var records []*EpochRecord
	if err := db.store.Find(&records, nil); err != nil {
		return 0, err
	}

	removed := 0
	for _, record := range records {
		_, err := db.GetDevice(record.DeviceID)
		if err == nil {
			continue
		}
		if err != bolthold.ErrNotFound {
			return removed, err
		}
		if err := db.store.Delete(record.DeviceID, &EpochRecord{}); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
