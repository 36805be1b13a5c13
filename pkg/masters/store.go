package masters

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// MastersStore provides read access to all master collections and
// administrative create/update for the category and type masters.
type MastersStore struct {
	db *gorm.DB
}

// NewMastersStore creates a new MastersStore.
func NewMastersStore(db *gorm.DB) *MastersStore {
	return &MastersStore{db: db}
}

// AutoMigrate creates or updates the master tables.
func (s *MastersStore) AutoMigrate() error {
	models := []any{
		&CategoryMaster{}, &TypeMaster{}, &KeywordMaster{},
		&User{}, &Service{}, &SubService{}, &Task{},
		&Campaign{}, &Project{}, &RepositoryItem{},
	}
	for _, m := range models {
		if err := s.db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto-migrate masters: %w", err)
		}
	}
	return nil
}

// UpsertCategory creates or updates a category master by name.
func (s *MastersStore) UpsertCategory(name string) (*CategoryMaster, error) {
	rec := &CategoryMaster{Name: name}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return nil, fmt.Errorf("upsert category master: %w", err)
	}
	return rec, nil
}

// UpsertType creates or updates a type master by name.
func (s *MastersStore) UpsertType(name string) (*TypeMaster, error) {
	rec := &TypeMaster{Name: name}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return nil, fmt.Errorf("upsert type master: %w", err)
	}
	return rec, nil
}

// Categories lists all category masters.
func (s *MastersStore) Categories() ([]CategoryMaster, error) {
	var out []CategoryMaster
	if err := s.db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list category masters: %w", err)
	}
	return out, nil
}

// Types lists all type masters.
func (s *MastersStore) Types() ([]TypeMaster, error) {
	var out []TypeMaster
	if err := s.db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list type masters: %w", err)
	}
	return out, nil
}

// Keywords lists all keyword masters.
func (s *MastersStore) Keywords() ([]KeywordMaster, error) {
	var out []KeywordMaster
	if err := s.db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list keyword masters: %w", err)
	}
	return out, nil
}

// Collections loads every indexable collection and projects it into the
// entity shape the catalog index consumes.
func (s *MastersStore) Collections() (assets.Collections, error) {
	var c assets.Collections

	var users []User
	if err := s.db.Find(&users).Error; err != nil {
		return c, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		c.Users = append(c.Users, entityOf(u.ID, u.Name))
	}

	var services []Service
	if err := s.db.Find(&services).Error; err != nil {
		return c, fmt.Errorf("list services: %w", err)
	}
	for _, v := range services {
		c.Services = append(c.Services, entityOf(v.ID, v.Name))
	}

	var subServices []SubService
	if err := s.db.Find(&subServices).Error; err != nil {
		return c, fmt.Errorf("list sub-services: %w", err)
	}
	for _, v := range subServices {
		c.SubServices = append(c.SubServices, entityOf(v.ID, v.Name))
	}

	var tasks []Task
	if err := s.db.Find(&tasks).Error; err != nil {
		return c, fmt.Errorf("list tasks: %w", err)
	}
	for _, v := range tasks {
		c.Tasks = append(c.Tasks, entityOf(v.ID, v.Name))
	}

	var campaigns []Campaign
	if err := s.db.Find(&campaigns).Error; err != nil {
		return c, fmt.Errorf("list campaigns: %w", err)
	}
	for _, v := range campaigns {
		c.Campaigns = append(c.Campaigns, entityOf(v.ID, v.Name))
	}

	var projects []Project
	if err := s.db.Find(&projects).Error; err != nil {
		return c, fmt.Errorf("list projects: %w", err)
	}
	for _, v := range projects {
		c.Projects = append(c.Projects, entityOf(v.ID, v.Name))
	}

	var repositoryItems []RepositoryItem
	if err := s.db.Find(&repositoryItems).Error; err != nil {
		return c, fmt.Errorf("list repository items: %w", err)
	}
	for _, v := range repositoryItems {
		c.RepositoryItems = append(c.RepositoryItems, entityOf(v.ID, v.Name))
	}

	return c, nil
}
