// Package option provides composable gorm query modifiers passed to the
// generic repository's Find/FindOne calls.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type optionFunc func(db *gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

func OrderBy(clause string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB { return db.Order(clause) })
}

func Limit(n int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB { return db.Limit(n) })
}

func Offset(n int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB { return db.Offset(n) })
}

func Preload(association string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB { return db.Preload(association) })
}
