package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"athlete-app/internal/config"
	"athlete-app/internal/database"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Применить все доступные миграции (действие по умолчанию)")
		down    = flag.Bool("down", false, "Откатить последнюю миграцию")
		steps   = flag.Int("steps", 0, "Применить/откатить N миграций (N > 0 — вверх, N < 0 — вниз)")
		version = flag.Bool("version", false, "Показать текущую версию схемы")
		force   = flag.Int("force", -1, "Принудительно установить версию схемы (восстановление из грязного состояния)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Использование: %s [опции]\n\nОпции:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nПримеры:\n")
		fmt.Fprintf(os.Stderr, "  %s              # применить все миграции\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -down        # откатить последнюю миграцию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -steps -1    # откатить одну миграцию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -version     # показать версию схемы\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -force 2     # установить версию 2 без выполнения миграций\n", os.Args[0])
	}

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения к базе данных: %v", err)
		}
	}()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Printf("Ошибка закрытия мигратора: %v", err)
		}
	}()

	actions := 0
	for _, set := range []bool{*up, *down, *steps != 0, *version, *force >= 0} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		log.Fatal("Ошибка: можно указать только одно действие за раз")
	}

	switch {
	case *version:
		showVersion(migrator)
	case *down:
		runDown(migrator)
	case *steps != 0:
		runSteps(migrator, *steps)
	case *force >= 0:
		if err := migrator.Force(*force); err != nil {
			log.Fatalf("Ошибка принудительной установки версии: %v", err)
		}
	default:
		// Без явного действия применяем все миграции.
		runUp(migrator)
	}
}

func runUp(migrator *database.Migrator) {
	if err := migrator.Up(); err != nil {
		if errors.Is(err, database.ErrNoChange) {
			log.Println("Нет миграций для применения: схема актуальна")
			return
		}
		log.Fatalf("Ошибка применения миграций: %v", err)
	}
}

func runDown(migrator *database.Migrator) {
	if err := migrator.Down(); err != nil {
		if errors.Is(err, database.ErrNoChange) {
			log.Println("Нет миграций для отката")
			return
		}
		log.Fatalf("Ошибка отката миграции: %v", err)
	}
}

func runSteps(migrator *database.Migrator, n int) {
	if err := migrator.Steps(n); err != nil {
		if errors.Is(err, database.ErrNoChange) {
			log.Println("Нет миграций для применения/отката")
			return
		}
		log.Fatalf("Ошибка применения миграций: %v", err)
	}
	log.Printf("Применено миграций: %d", n)
}

func showVersion(migrator *database.Migrator) {
	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Ошибка получения версии: %v", err)
	}

	switch {
	case version == 0:
		log.Println("Версия: миграции ещё не применялись")
	case dirty:
		log.Printf("Версия: %d — %v", version, database.ErrDirtyState)
		os.Exit(1)
	default:
		log.Printf("Версия: %d", version)
	}
}
