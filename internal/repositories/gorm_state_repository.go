package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"envy/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppState is the gorm model behind GormStateRepository.
type AppState struct {
	StorageKey string    `gorm:"primaryKey;size:191"`
	Payload    string    `gorm:"type:text;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (AppState) TableName() string { return "app_states" }

// GormStateRepository persists the aggregate through gorm, normally on PostgreSQL.
type GormStateRepository struct {
	DB  *gorm.DB
	Key string
}

func NewGormStateRepository(db *gorm.DB, key string) GormStateRepository {
	if key == "" {
		key = store.DefaultStorageKey
	}
	return GormStateRepository{DB: db, Key: key}
}

func (r GormStateRepository) Migrate(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("gorm: no database handle")
	}
	return r.DB.WithContext(ctx).AutoMigrate(&AppState{})
}

func (r GormStateRepository) Load(ctx context.Context) ([]byte, error) {
	if r.DB == nil {
		return nil, errors.New("gorm: no database handle")
	}
	var row AppState
	err := r.DB.WithContext(ctx).Where("storage_key = ?", r.Key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Key, err)
	}
	return []byte(row.Payload), nil
}

func (r GormStateRepository) Save(ctx context.Context, raw []byte) error {
	if r.DB == nil {
		return errors.New("gorm: no database handle")
	}
	row := AppState{StorageKey: r.Key, Payload: string(raw), UpdatedAt: time.Now().UTC()}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", r.Key, err)
	}
	return nil
}

func (r GormStateRepository) Clear(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("gorm: no database handle")
	}
	if err := r.DB.WithContext(ctx).Where("storage_key = ?", r.Key).Delete(&AppState{}).Error; err != nil {
		return fmt.Errorf("clear %s: %w", r.Key, err)
	}
	return nil
}

func (r GormStateRepository) Driver() string { return "postgres" }

func (r GormStateRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("gorm: no database handle")
	}
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
