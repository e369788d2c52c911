package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
)

// Installer directory. The option list is cached for a few minutes (it feeds
// dropdown filters); list mutations clear the cache through hooks.
type Installer struct {
	ID          int       `gorm:"primary_key" json:"id"`
	CompanyName string    `gorm:"size:255" json:"company_name"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInstaller struct {
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

func (i Installer) GetId() int {
	return i.ID
}

// ListInstallers returns the active installer directory, redis or db.
func ListInstallers(ctx context.Context) ([]*Installer, error) {
	// first try redis cache
	results, err := utils.RetrieveRedisList[Installer]()
	if err != nil {
		return nil, err
	}
	// if not exists in redis
	if results == nil {
		db := config.GetDB()
		if err = db.WithContext(ctx).Where("is_active = ?", true).
			Order("company_name, last_name, first_name").
			Find(&results).Error; err != nil {
			return nil, err
		}

		// caching the result
		if err := utils.StoreRedisList[Installer](results); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func CreateInstaller(ctx context.Context, input *NewInstaller) (*Installer, error) {
	db := config.GetDB()
	installer := Installer{
		CompanyName: input.CompanyName,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		IsActive:    utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&installer).Error; err != nil {
		return nil, err
	}
	return &installer, nil
}

func ToggleInstallerActive(ctx context.Context, id int, isActive bool) (*Installer, error) {
	db := config.GetDB()
	var installer Installer
	if err := db.WithContext(ctx).First(&installer, id).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&installer).Updates(map[string]any{"is_active": isActive}).Error; err != nil {
		return nil, err
	}
	installer.IsActive = &isActive
	return &installer, nil
}
