package repository

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindAll() ([]model.Tag, error)
	FindByID(id uint) (*model.Tag, error)
	Update(tag *model.Tag) (UpdateOutcome, error)
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

type tagRepository struct {
	table table[model.Tag]
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{table: newTable[model.Tag](db, "tag")}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	logger.Debug("Creating tag in database", map[string]interface{}{
		"name": tag.Name,
	})
	return r.table.create(tag)
}

func (r *tagRepository) FindAll() ([]model.Tag, error) {
	return r.table.findAll()
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	return r.table.findByID(id)
}

func (r *tagRepository) Update(tag *model.Tag) (UpdateOutcome, error) {
	logger.Debug("Updating tag in database", map[string]interface{}{
		"tag_id": tag.ID,
		"name":   tag.Name,
	})
	return r.table.updateColumns(tag.ID, map[string]interface{}{
		"name": tag.Name,
	})
}

func (r *tagRepository) Delete(id uint) error {
	logger.Debug("Deleting tag from database", map[string]interface{}{
		"tag_id": id,
	})
	return r.table.delete(id)
}

func (r *tagRepository) Exists(id uint) (bool, error) {
	return r.table.exists(id)
}
