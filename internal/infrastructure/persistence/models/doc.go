// Package models contains the GORM persistence models and their conversion
// functions to and from domain entities. Models carry the storage concerns
// (column types, indexes, JSON encoding) so the domain types stay free of
// them.
package models
