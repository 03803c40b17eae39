package repository

import (
	"context"
	"errors"
	"time"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	smtpKey       = "smtp"
	commissionKey = "commission"
)

type SettingsRepository interface {
	GetSMTP(ctx context.Context) (*models.SMTPSettings, error)
	UpsertSMTP(ctx context.Context, s *models.SMTPSettings) error
	GetCommission(ctx context.Context) (*models.CommissionSettings, error)
	UpsertCommission(ctx context.Context, s *models.CommissionSettings) error
}

type settingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{col: db.Collection("settings")}
}

func (r *settingsRepository) GetSMTP(ctx context.Context) (*models.SMTPSettings, error) {
	var s models.SMTPSettings
	err := r.col.FindOne(ctx, bson.M{"key": smtpKey}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) UpsertSMTP(ctx context.Context, s *models.SMTPSettings) error {
	s.Key = smtpKey
	s.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"key": smtpKey}, s, opts)
	return err
}

func (r *settingsRepository) GetCommission(ctx context.Context) (*models.CommissionSettings, error) {
	var s models.CommissionSettings
	err := r.col.FindOne(ctx, bson.M{"key": commissionKey}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) UpsertCommission(ctx context.Context, s *models.CommissionSettings) error {
	s.Key = commissionKey
	s.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"key": commissionKey}, s, opts)
	return err
}
