package main

import (
	"log"
	"os"
	"time"

	"athlete-app/internal/config"
	"athlete-app/internal/database"
)

// Скрипт быстрой проверки подключения к базе данных: конфигурация,
// открытие соединения, ping и тестовый запрос. Используется при локальной
// настройке окружения и в docker-compose healthcheck-сценариях.
func main() {
	log.Println("Проверка подключения к базе данных...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// При запуске на хосте docker-имя "postgres" недостижимо — подменяем
	// на localhost, чтобы скрипт работал и вне контейнера.
	if cfg.Database.Host == "postgres" && !insideDocker() {
		log.Println("Хост 'postgres' вне Docker: использую localhost")
		cfg.Database.Host = "localhost"
	}

	if cfg.Database.Host == "postgres" {
		log.Println("Docker-режим: убедитесь, что PostgreSQL запущен (docker-compose up -d postgres)")
		time.Sleep(2 * time.Second)
	}

	log.Printf("Подключение: host=%s port=%s user=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.DBName, cfg.Database.SSLMode)

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatalf("Ошибка ping: %v", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatalf("Ошибка выполнения тестового запроса: %v", err)
	}
	if result != 1 {
		log.Fatalf("Неожиданный результат тестового запроса: %d", result)
	}

	log.Println("База данных готова к работе")
}

func insideDocker() bool {
	if os.Getenv("container") != "" {
		return true
	}
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
