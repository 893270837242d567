package location

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	salesEntity "tillpoint/model/entity/sales"
)

// ErrLocationReferenced is returned when deleting a location that still has
// stock levels or sale history.
var ErrLocationReferenced = errors.New("location has stock or sale references")

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(l *locationEntity.Location) error {
	return r.db.Create(l).Error
}

func (r *LocationRepository) FindByID(id uint) (*locationEntity.Location, error) {
	var l locationEntity.Location
	if err := r.db.First(&l, "location_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) FindByName(name string) (*locationEntity.Location, error) {
	var l locationEntity.Location
	if err := r.db.First(&l, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all locations ordered by name.
func (r *LocationRepository) List() ([]locationEntity.Location, error) {
	var locations []locationEntity.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

// Delete removes a location unless stock or sale rows still reference it.
func (r *LocationRepository) Delete(id uint) error {
	var count int64
	if err := r.db.Model(&inventoryEntity.StockLevel{}).Where("location_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := r.db.Model(&salesEntity.SaleItem{}).Where("location_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
	}
	if count > 0 {
		return ErrLocationReferenced
	}
	return r.db.Delete(&locationEntity.Location{}, "location_id = ?", id).Error
}
