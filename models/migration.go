package models

import (
	"log"

	"github.com/margh00b/woodtrack_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Client{}, &Job{}, &SalesOrder{},
		&ProductionSchedule{}, &Installation{}, &Installer{},
		&Backorder{}, &Invoice{},
		&ServiceOrder{}, &ServiceOrderPart{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := MigrateViews(); err != nil {
		log.Fatal(err)
	}
}
