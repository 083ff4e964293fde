package services

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// find loads one record by primary key
func find[T any](db *gorm.DB, id uint) (*T, error) {
	var record T
	if err := db.First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// list loads every record ordered by primary key
func list[T any](db *gorm.DB) ([]T, error) {
	records := []T{}
	if err := db.Order("id").Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

// insert creates a record
func insert[T any](db *gorm.DB, record *T) error {
	return translateError(db.Create(record).Error)
}

// save writes every column of an existing record
func save[T any](db *gorm.DB, record *T) error {
	return translateError(db.Save(record).Error)
}

// parseID reads a record reference sent by a client. Anything that is not a
// positive integer cannot identify a record.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// deref returns the pointed-to value or fallback when the pointer is nil
func deref(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
