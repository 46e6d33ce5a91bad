// Package mysql initializes the database connection and the repository layer.
package mysql

import (
	"fmt"

	"your_chores_server/internal/config"
	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init opens the MySQL connection, migrates the schema and returns the
// repository aggregate. Connection parameters come from the configuration
// (with environment overrides for deployments).
func Init() *repository.Repositories {
	conf := config.GetConfig()

	// DSN format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate creates missing tables and columns; it never drops data.
	err = db.AutoMigrate(
		&model.UserInfo{},
		&model.Room{},
		&model.RoomMember{},
		&model.JoinRequest{},
		&model.Chore{},
		&model.AppVersion{},
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
