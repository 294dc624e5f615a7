package configs

import (
	"log"

	"backend/entity"
	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		FullName: "Tiffin Admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	return db.Create(&entity.UserRole{UserID: admin.ID, Role: entity.RoleAdmin}).Error
}

// Starter menu so a fresh install is browsable.
func SeedMenu() error {
	db := DB()

	var count int64
	db.Model(&entity.MenuItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		{Name: "Avocado Toast Supreme", Description: "Sourdough, smashed avocado, poached egg", Price: 180, Category: "Breakfast", IsAvailable: true, IsFeatured: true, Stock: 25},
		{Name: "Comfort Khichuri Bowl", Description: "Slow-cooked khichuri with seasonal veg", Price: 140, Category: "Lunch", IsAvailable: true, Stock: 40},
		{Name: "Special Biryani", Description: "House biryani, pre-order only", Price: 280, Category: "Pre-order", IsAvailable: true, IsFeatured: true, Stock: 15},
		{Name: "Fresh Brewed Coffee", Description: "Single-origin pour over", Price: 140, Category: "Drinks", IsAvailable: true, Stock: 100},
		{Name: "Sweet Lassi", Description: "Thick yogurt lassi", Price: 140, Category: "Drinks", IsAvailable: true, Stock: 60},
	}
	for i := range items {
		if err := db.FirstOrCreate(&items[i], entity.MenuItem{Name: items[i].Name}).Error; err != nil {
			return err
		}
	}
	return nil
}
