package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"grantflow/internal/config"
)

const usage = "usage: migrate <up|down|steps N|force V|version>"

func main() {
	log.SetPrefix("migrate: ")
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	dir := os.Getenv("GRANTFLOW_MIGRATIONS_DIR")
	if dir == "" {
		dir = "db/migrations"
	}

	m, err := migrate.New("file://"+dir, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("opening migrations at %s: %v", dir, err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	switch os.Args[1] {
	case "up":
		if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
			log.Println("schema already up to date")
		} else if err != nil {
			log.Fatalf("up: %v", err)
		} else {
			log.Println("schema migrated up")
		}

	case "down":
		if err := m.Down(); errors.Is(err, migrate.ErrNoChange) {
			log.Println("nothing to revert")
		} else if err != nil {
			log.Fatalf("down: %v", err)
		} else {
			log.Println("schema reverted")
		}

	case "steps":
		n := intArg(2, "steps")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("steps %d: %v", n, err)
		}
		log.Printf("applied %d step(s)", n)

	case "force":
		v := intArg(2, "force")
		if err := m.Force(v); err != nil {
			log.Fatalf("force %d: %v", v, err)
		}
		log.Printf("schema version forced to %d", v)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("no migrations applied yet")
			return
		}
		if err != nil {
			log.Fatalf("version: %v", err)
		}
		fmt.Printf("version %d dirty=%v\n", version, dirty)

	default:
		log.Fatalf("unknown command %q\n%s", os.Args[1], usage)
	}
}

func intArg(pos int, cmd string) int {
	if len(os.Args) <= pos {
		log.Fatalf("%s needs a numeric argument\n%s", cmd, usage)
	}
	n, err := strconv.Atoi(os.Args[pos])
	if err != nil {
		log.Fatalf("%s: %q is not a number", cmd, os.Args[pos])
	}
	return n
}
