// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Every model has a TableName, a ToDomain mapper and a FromDomain mapper.
// List-valued domain fields (product images, store categories) are stored as
// JSON text so the same schema works on PostgreSQL and SQLite.
//
// Files:
//   - base.go: BaseModel and AggregateModel
//   - identity.go: users
//   - vendor.go: vendors
//   - catalog.go: products
//   - support.go: support tickets
//   - review.go: product reviews
//   - notification.go: admin notifications
//   - setting.go: platform settings
package models
