package main

import (
	"log"

	"go-stock-api/internal/config"
	"go-stock-api/internal/model"
	"go-stock-api/pkg/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeds the database with demo accounts, categories and products for local
// development. Safe to run repeatedly: existing rows are left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db := database.Connect(cfg.Postgres.DSN())
	db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Transaction{}, &model.User{})

	seedUsers(db)
	seedCatalog(db)

	log.Println("Seeding complete")
}

func seedUsers(db *gorm.DB) {
	users := []struct {
		first, last, email string
		role               model.Role
	}{
		{"Super", "Admin", "superadmin@stock.com", model.RoleSuperAdmin},
		{"Regular", "Admin", "admin@stock.com", model.RoleAdmin},
	}

	for _, u := range users {
		var existing model.User
		err := db.Where("email = ?", u.email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to query user %s: %v", u.email, err)
		}

		user := &model.User{
			FullName:  u.first + " " + u.last,
			FirstName: u.first,
			LastName:  u.last,
			Email:     u.email,
			Role:      u.role,
		}
		if err := user.SetPassword("password123"); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created %s (%s)", u.email, u.role)
	}
}

func seedCatalog(db *gorm.DB) {
	categories := []struct {
		name, description string
	}{
		{"Electronics", "Electronic devices and accessories"},
		{"Office Supplies", "Stationery and office equipment"},
		{"Furniture", "Desks, chairs and storage"},
		{"Food & Beverage", "Consumables for the pantry"},
		{"Cleaning", "Cleaning supplies and chemicals"},
	}

	byName := make(map[string]*model.Category, len(categories))
	for _, c := range categories {
		cat := &model.Category{Name: c.name, Description: c.description}
		err := db.Where("name = ?", c.name).First(cat).Error
		if err == gorm.ErrRecordNotFound {
			cat = &model.Category{Name: c.name, Description: c.description}
			if err := db.Create(cat).Error; err != nil {
				log.Fatalf("Failed to create category %s: %v", c.name, err)
			}
			log.Printf("Created category %s", c.name)
		} else if err != nil {
			log.Fatalf("Failed to query category %s: %v", c.name, err)
		}
		byName[c.name] = cat
	}

	products := []struct {
		name, category string
		stock          int
		price          string
	}{
		{"Wireless Mouse", "Electronics", 40, "19.99"},
		{"USB-C Dock", "Electronics", 15, "89.50"},
		{"A4 Paper Ream", "Office Supplies", 200, "4.75"},
		{"Ballpoint Pens (12pk)", "Office Supplies", 120, "3.20"},
		{"Office Chair", "Furniture", 8, "149.00"},
		{"Standing Desk", "Furniture", 5, "399.00"},
		{"Coffee Beans 1kg", "Food & Beverage", 30, "12.40"},
		{"Surface Cleaner", "Cleaning", 25, "6.10"},
	}

	for _, p := range products {
		var existing model.Product
		err := db.Where("name = ?", p.name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to query product %s: %v", p.name, err)
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatalf("Invalid price for %s: %v", p.name, err)
		}
		product := &model.Product{
			Name:       p.name,
			CategoryID: byName[p.category].ID,
			Stock:      p.stock,
			Price:      price,
		}
		if err := db.Create(product).Error; err != nil {
			log.Fatalf("Failed to create product %s: %v", p.name, err)
		}
		log.Printf("Created product %s (stock %d)", p.name, p.stock)
	}
}
