package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository defines decoupled operations for session persistence.
type CredentialRepository interface {
	Get(ctx context.Context) (*Credential, error)
	Put(ctx context.Context, cred *Credential) error
	UpdateAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// gormCredentialRepo is a GORM-backed implementation of CredentialRepository.
// Use constructor NewCredentialRepository to obtain an instance.
type gormCredentialRepo struct{ db *gorm.DB }

// NewCredentialRepository creates a CredentialRepository. Accepts *gorm.DB to avoid global access.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepo{db: db}
}

func (r *gormCredentialRepo) Get(ctx context.Context) (*Credential, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var cred Credential
	err := r.db.WithContext(ctx).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *gormCredentialRepo) Put(ctx context.Context, cred *Credential) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	cred.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "user", "role"}),
	}).Create(cred).Error
}

func (r *gormCredentialRepo) UpdateAccessToken(ctx context.Context, token string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	res := r.db.WithContext(ctx).Model(&Credential{}).Where("id = ?", 1).Update("access_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no credential record to update")
	}
	return nil
}

func (r *gormCredentialRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Credential{}).Error
}
