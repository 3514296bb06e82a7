package history

// Package history persists launch attempts in a SQLite database through GORM.
