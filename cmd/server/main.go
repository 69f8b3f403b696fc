package main

import (
	"errors"
	"log"

	"athlete-app/internal/config"
	"athlete-app/internal/database"
	"athlete-app/internal/server"
)

//	@title			Athlete App API
//	@version		1.0.0
//	@description	API регистрации атлетов: аутентификация и профиль.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	log.Println("Athlete App Server Starting...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	log.Printf("Конфигурация загружена успешно")
	log.Printf("Сервер будет запущен на %s", cfg.Server.Address())
	log.Printf("База данных: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к базе данных
	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Применяем миграции при старте
	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка инициализации мигратора: %v", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, database.ErrNoChange) {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	// Создаём и запускаем сервер
	srv, err := server.NewServer(cfg, db)
	if err != nil {
		log.Fatalf("Ошибка инициализации сервера: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("Ошибка работы сервера: %v", err)
	}
}
