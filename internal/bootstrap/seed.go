package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kitapantaups.id/api/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.Aduan{},
		&entity.AduanDocument{},
		&entity.TindakLanjut{},
		&entity.AppActivity{},
		&entity.MasterStatus{},
		&entity.MasterKategoriMasalah{},
		&entity.MasterJenisTL{},
		&entity.MasterKPS{},
		&entity.Setting{},
	)
}

// SeedMasterData inserts the reference rows the UI depends on. Existing rows are left untouched.
func SeedMasterData(db *gorm.DB) error {
	statuses := []entity.MasterStatus{
		{Kode: "disposisi", NamaStatus: "Disposisi", Warna: "blue"},
		{Kode: "proses", NamaStatus: "Proses", Warna: "amber"},
		{Kode: "selesai", NamaStatus: "Selesai", Warna: "green"},
		{Kode: "ditolak", NamaStatus: "Ditolak", Warna: "red"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return err
	}

	kategori := []entity.MasterKategoriMasalah{
		{NamaKategori: "Konflik Tenurial"},
		{NamaKategori: "Tumpang Tindih Perizinan"},
		{NamaKategori: "Kelembagaan"},
		{NamaKategori: "Pemanfaatan Hasil Hutan"},
		{NamaKategori: "Lainnya"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&kategori).Error; err != nil {
		return err
	}

	jenisTL := []entity.MasterJenisTL{
		{NamaJenisTL: "Telaah Administrasi"},
		{NamaJenisTL: "Rapat Koordinasi"},
		{NamaJenisTL: "Surat Jawaban"},
		{NamaJenisTL: "Verifikasi Lapangan"},
		{NamaJenisTL: "Nota Dinas Balai"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&jenisTL).Error; err != nil {
		return err
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@kitapantau.id").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Email:        "admin@kitapantau.id",
		PasswordHash: string(hashedPasswordBytes),
		DisplayName:  "Administrator",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@kitapantau.id")
	log.Println("   Password: admin123")

	return nil
}
