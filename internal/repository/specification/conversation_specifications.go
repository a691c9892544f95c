package specification

import "gorm.io/gorm"

// BySessionID filters conversation records by their chat session key.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByProvider filters conversation records by the backend that answered.
type ByProvider struct {
	Provider string
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", s.Provider)
}
