// Command backfill is a one-off migration: catalog entries created before
// the earning/commission split existed carry zeroes in those columns, and
// this fills them in from the current price. Run manually; it is not part of
// the serving path.
package main

import (
	"log"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/services"
)

func main() {
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=artniva port=5432 sslmode=disable")
	viper.AutomaticEnv()

	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var items []models.CatalogItem
	err = db.Where("price > 0 AND seller_earning = 0 AND commission = 0").Find(&items).Error
	if err != nil {
		log.Fatalf("Failed to load catalog entries: %v", err)
	}

	if len(items) == 0 {
		log.Println("All catalog entries already carry an earning/commission split. No update needed.")
		return
	}

	log.Printf("Found %d catalog entries without a split. Updating...", len(items))

	for i := range items {
		item := &items[i]
		item.SellerEarning = item.Price * (1 - services.CommissionRate)
		item.Commission = item.Price * services.CommissionRate
		err := db.Model(item).Updates(map[string]interface{}{
			"seller_earning": item.SellerEarning,
			"commission":     item.Commission,
		}).Error
		if err != nil {
			log.Fatalf("Failed to update %s %s: %v", item.Kind, item.ID, err)
		}
	}

	log.Printf("Successfully backfilled %d catalog entries", len(items))
}
