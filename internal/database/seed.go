package database

import (
	"github.com/localnerve/franchisedb/internal/logger"
	"github.com/localnerve/franchisedb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed inserts an example franchise with one branch and three products.
// It does nothing when any franchise already exists.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Franchise{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		franchise := models.Franchise{
			Name: "Franquicia de Ejemplo",
			Branches: []models.Branch{
				{
					Name: "Sucursal Centro",
					Products: []models.Product{
						{Name: "Hamburguesa Clásica", StockQuantity: 50},
						{Name: "Papas Fritas", StockQuantity: 100},
						{Name: "Refresco", StockQuantity: 75},
					},
				},
			},
		}
		if err := tx.Create(&franchise).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("Database seeded with example data",
			zap.Uint64("franchise_id", franchise.ID))
		return nil
	})
}
