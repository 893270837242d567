package catalog

import (
	"errors"

	"gorm.io/gorm"

	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	salesEntity "tillpoint/model/entity/sales"
)

// ErrProductReferenced is returned when deleting a product that still has
// stock levels or sale history.
var ErrProductReferenced = errors.New("product has stock or sale references")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *catalogEntity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySKU(sku string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the full catalog ordered by name.
func (r *ProductRepository) List() ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Update(p *catalogEntity.Product) error {
	return r.db.Save(p).Error
}

// Delete removes a product. Fails with ErrProductReferenced while stock or
// sale rows still point at it; deleting those would orphan history.
func (r *ProductRepository) Delete(id uint) error {
	referenced, err := r.HasReferences(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrProductReferenced
	}
	return r.db.Delete(&catalogEntity.Product{}, "product_id = ?", id).Error
}

// HasReferences reports whether any StockLevel or SaleItem row references the product.
func (r *ProductRepository) HasReferences(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&inventoryEntity.StockLevel{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&salesEntity.SaleItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// BatchFindByIDs fetches products for multiple IDs in one query.
func (r *ProductRepository) BatchFindByIDs(ids []uint) (map[uint]catalogEntity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []catalogEntity.Product
	if err := r.db.Where("product_id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	result := make(map[uint]catalogEntity.Product, len(products))
	for _, p := range products {
		result[p.ProductID] = p
	}
	return result, nil
}

// FetchFlatWithStock returns one flat map per product with the quantity held
// at the given location merged in (0 when no StockLevel row exists). The flat
// shape feeds the mapstructure-based API mappers.
func (r *ProductRepository) FetchFlatWithStock(locationID uint) (map[uint]map[string]interface{}, error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}

	type qtyRow struct {
		ProductID uint `gorm:"column:product_id"`
		Quantity  int  `gorm:"column:quantity"`
	}
	var rows []qtyRow
	if err := r.db.Table("stock_level").
		Select("product_id, quantity").
		Where("location_id = ?", locationID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	qty := make(map[uint]int, len(rows))
	for _, row := range rows {
		qty[row.ProductID] = row.Quantity
	}

	flat := make(map[uint]map[string]interface{}, len(products))
	for _, p := range products {
		flat[p.ProductID] = map[string]interface{}{
			"product_id": p.ProductID,
			"sku":        p.SKU,
			"name":       p.Name,
			"cost":       p.Cost,
			"price":      p.Price,
			"uom":        p.UOM,
			"quantity":   qty[p.ProductID],
		}
	}
	return flat, nil
}
