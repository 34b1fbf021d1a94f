package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
	"github.com/taskboard-app/taskboard/internal/store"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Dashboard{},
		&domain.DashboardMember{},
		&domain.Tag{},
		&domain.Todo{},
		&store.KVEntry{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Dashboard: NewDashboardRepository(db),
		Member:    NewMemberRepository(db),
		Todo:      NewTodoRepository(db),
		Tag:       NewTagRepository(db),
	}
}
