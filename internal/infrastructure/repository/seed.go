package repository

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	id, name, category, group, supplier string
	price, cost, stock                  int64
}

// SeedDocument returns the sample data a fresh installation starts with.
func SeedDocument() *entity.Document {
	now := time.Now()
	expiry := now.AddDate(1, 0, 0)

	products := []seedProduct{
		{"prod-001", "Kopi Susu Gula Aren", "Minuman Kopi", "002", "sup-002", 18000, 10000, 150},
		{"prod-002", "Croissant Cokelat", "Pastry", "003", "sup-004", 22000, 15000, 80},
		{"prod-003", "Matcha Latte", "Minuman Teh", "002", "sup-002", 25000, 16000, 95},
		{"prod-004", "Roti Bakar Keju", "Roti", "003", "sup-004", 15000, 8000, 120},
		{"prod-005", "Americano", "Minuman Kopi", "002", "sup-002", 15000, 8000, 200},
		{"prod-006", "Red Velvet Cake", "Kue", "003", "sup-004", 35000, 20000, 40},
		{"prod-007", "Teh Lemon Madu", "Minuman Teh", "002", "sup-003", 16000, 9000, 110},
		{"prod-008", "Nasi Goreng Spesial", "Makanan Utama", "004", "sup-003", 28000, 18000, 75},
	}

	doc := &entity.Document{
		ProductGroups: []entity.ProductGroup{
			{ID: "001", Name: "UMUM"},
			{ID: "002", Name: "MAKANAN & MINUMAN"},
			{ID: "003", Name: "ROTI & KUE"},
			{ID: "004", Name: "MAKANAN UTAMA"},
		},
		Suppliers: []entity.Supplier{
			{ID: "sup-001", Name: "UMUM", ContactPerson: "-", Address: "-", Phone: "-"},
			{ID: "sup-002", Name: "PT Sinar Jaya Abadi", ContactPerson: "Bapak Rudi", Address: "Jl. Industri No. 123, Jakarta", Phone: "021-555-1234"},
			{ID: "sup-003", Name: "CV Makmur Pangan", ContactPerson: "Ibu Siti", Address: "Jl. Pahlawan No. 45, Surabaya", Phone: "031-555-5678"},
			{ID: "sup-004", Name: "Toko Bahan Kue Sejahtera", ContactPerson: "Bapak Hartono", Address: "Jl. Merdeka No. 78, Bandung", Phone: "022-555-8765"},
		},
		Users: []entity.User{
			{ID: "user-001", Username: "admin", FullName: "Administrator Utama", Role: enum.UserRoleAdmin, Status: enum.UserStatusActive},
			{ID: "user-002", Username: "kasir01", FullName: "Siti Sarah", Role: enum.UserRoleCashier, Status: enum.UserStatusActive},
			{ID: "user-003", Username: "kasir02", FullName: "Budi Santoso", Role: enum.UserRoleCashier, Status: enum.UserStatusInactive},
			{ID: "user-004", Username: "gudang01", FullName: "Rahmat Hidayat", Role: enum.UserRoleWarehouse, Status: enum.UserStatusActive},
		},
		Members: []entity.Member{
			seedMember("C0001", "Budi Hartono", "081234567890", "Jl. Merdeka 1", "Jakarta", 150, true, now, expiry),
			seedMember("C0002", "Siti Aminah", "082345678901", "Jl. Sudirman 2", "Bandung", 275, true, now, expiry),
			seedMember("C0003", "Dewi Lestari", "083456789012", "Jl. Pahlawan 3", "Surabaya", 50, true, now, expiry),
			seedMember("C0004", "Rahmat Hidayat", "085678901234", "Jl. Gatot Subroto 4", "Medan", 800, false, now, expiry),
		},
		Salesmen: []entity.Salesman{
			{ID: "sls-001", Name: "Andi Wijaya", Phone: "081122334455", Address: "Jl. Kenanga No. 10", Status: enum.UserStatusActive},
			{ID: "sls-002", Name: "Bunga Citra", Phone: "081234567890", Address: "Jl. Mawar No. 5", Status: enum.UserStatusActive},
		},
		Banks: []entity.Bank{
			{ID: "bank-001", Name: "BCA", Type: "Bank", AccountNumber: "1234567890", AccountHolder: "Hijrah Cell"},
			{ID: "bank-002", Name: "Mandiri", Type: "Bank", AccountNumber: "0987654321", AccountHolder: "Hijrah Cell"},
			{ID: "ewallet-001", Name: "GoPay", Type: "E-Wallet"},
			{ID: "ewallet-002", Name: "OVO", Type: "E-Wallet"},
			{ID: "ewallet-003", Name: "DANA", Type: "E-Wallet"},
		},
	}

	for _, p := range products {
		price := decimal.NewFromInt(p.price)
		product := entity.Product{
			ID:         p.id,
			Name:       p.name,
			Category:   p.category,
			GroupID:    p.group,
			SupplierID: p.supplier,
			Price:      price,
			Cost:       decimal.NewFromInt(p.cost),
			Stock:      decimal.NewFromInt(p.stock),
			Units: []entity.Unit{
				{Name: entity.DefaultUnitName, Quantity: decimal.NewFromInt(1), Price: price, Barcode: p.id},
			},
		}
		if p.id == "prod-002" {
			product.Units = append(product.Units, entity.Unit{
				Name: "LUSIN", Quantity: decimal.NewFromInt(12), Price: decimal.NewFromInt(240000), Barcode: "prod-002-L",
			})
		}
		doc.Products = append(doc.Products, product)
	}

	doc.EnsureCollections()
	return doc
}

func seedMember(id, name, phone, address, city string, points int64, active bool, registered, expiry time.Time) entity.Member {
	level := "Level 1"
	if !active {
		level = "Level 2"
	}
	return entity.Member{
		ID:               id,
		Name:             name,
		Phone:            phone,
		Address:          address,
		City:             city,
		Points:           points,
		IsActive:         active,
		Level:            level,
		Deposit:          decimal.Zero,
		CreditLimit:      decimal.Zero,
		RegistrationDate: registered,
		ExpiryDate:       expiry,
	}
}
