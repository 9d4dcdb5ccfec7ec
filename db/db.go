package db

import (
	"fmt"
	"log"

	"github.com/Ne-x-tr-on/toolport-v1/config"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{}, &models.Lab{}, &models.Lecturer{},
		&models.Student{}, &models.Tool{}, &models.Delegation{},
	); err != nil {
		return err
	}

	// 逾期扫描只看未归还的行
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_sweep_idx
	  ON %s (expected_return)
	  WHERE status = 'Issued';
	`, models.DelegationTable, models.DelegationTable)).Error; err != nil {
		return err
	}

	// 学生档案页：按学生 + 状态查记录
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_student_status_idx
	  ON %s (student_id, status);
	`, models.DelegationTable, models.DelegationTable)).Error; err != nil {
		return err
	}

	return nil
}
