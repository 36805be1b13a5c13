// Package masters holds the externally managed reference lists (category,
// type, and keyword masters) and the source-work collections (services,
// sub-services, tasks, campaigns, projects, repository items) that assets
// link against.
package masters

import (
	"time"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// CategoryMaster is a controlled-vocabulary asset category.
type CategoryMaster struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (CategoryMaster) TableName() string { return "category_masters" }

// TypeMaster is a controlled-vocabulary asset type.
type TypeMaster struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (TypeMaster) TableName() string { return "type_masters" }

// KeywordMaster is a controlled-vocabulary keyword.
type KeywordMaster struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (KeywordMaster) TableName() string { return "keyword_masters" }

// User is a catalog user referenced by ownership fields.
type User struct {
	ID    int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;not null" json:"name"`
	Email string `gorm:"column:email" json:"email,omitempty"`
}

// TableName returns the GORM table name.
func (User) TableName() string { return "users" }

// Service is a top-level service offering.
type Service struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

// TableName returns the GORM table name.
func (Service) TableName() string { return "services" }

// SubService is a service subdivision.
type SubService struct {
	ID        int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	ServiceID int64  `gorm:"column:service_id;index" json:"service_id"`
}

// TableName returns the GORM table name.
func (SubService) TableName() string { return "sub_services" }

// Task is a unit of source work an asset can map to.
type Task struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

// TableName returns the GORM table name.
func (Task) TableName() string { return "tasks" }

// Campaign is a marketing campaign an asset can map to.
type Campaign struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

// TableName returns the GORM table name.
func (Campaign) TableName() string { return "campaigns" }

// Project is a client project an asset can map to.
type Project struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

// TableName returns the GORM table name.
func (Project) TableName() string { return "projects" }

// RepositoryItem is a shared repository entry an asset can map to.
type RepositoryItem struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

// TableName returns the GORM table name.
func (RepositoryItem) TableName() string { return "repository_items" }

// entityOf projects a master row into the catalog's entity shape.
func entityOf(id int64, name string) assets.Entity {
	return assets.Entity{ID: id, Name: name}
}
