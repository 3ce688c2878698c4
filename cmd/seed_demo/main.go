package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/2beens/gymlogger/internal/config"
	"github.com/2beens/gymlogger/internal/db"
	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/logs"
	"github.com/2beens/gymlogger/pkg"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

// seeds Monday with a bench press and a one-arm curl, plus a few weeks of sets,
// leaving one week out so the progress chart shows a gap
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	weeks := flag.Int("weeks", 5, "number of trailing weeks to fill")
	seed := flag.Int64("seed", 0, "fake data seed, 0 = random")
	hashToken := flag.String("hash-token", "", "print the bcrypt hash of this API token and exit")
	flag.Parse()

	if *hashToken != "" {
		hash, err := pkg.HashToken(*hashToken)
		if err != nil {
			log.Fatalf("hash token: %s", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	log.SetLevel(log.DebugLevel)
	gofakeit.Seed(*seed)

	ctx := context.Background()
	store := db.NewStore(db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("GYMLOG_DB_USER"),
		DBPassword: os.Getenv("GYMLOG_DB_PASSWORD"),
	})
	defer store.Close()

	pool, err := store.Pool(ctx)
	if err != nil {
		log.Fatalf("open store: %s", err)
	}

	cal := calendar.New(cfg.Location(), nil)
	logsRepo := logs.NewRepo(pool, cal)
	logged, err := logsRepo.ListLogTimes(ctx, nil, nil)
	if err != nil {
		log.Fatalf("list log times: %s", err)
	}
	if len(logged) > 0 {
		log.Infof("database already has %d logged sessions, skipping", len(logged))
		return
	}

	exercisesRepo := exercises.NewRepo(pool)
	bench, curl, err := addDemoExercises(ctx, exercisesRepo)
	if err != nil {
		log.Fatalf("add demo exercises: %s", err)
	}

	demoLogs := buildDemoLogs(cal, *weeks, *bench, *curl)
	if err := logsRepo.Save(ctx, nil, demoLogs); err != nil {
		log.Fatalf("save demo logs: %s", err)
	}

	log.Infof("seeded exercises [%d, %d] and %d logs", bench.ID, curl.ID, len(demoLogs))
}

func addDemoExercises(ctx context.Context, repo *exercises.Repo) (*exercises.Exercise, *exercises.Exercise, error) {
	const monday = 0
	existing, err := repo.ListByDay(ctx, monday)
	if err != nil {
		return nil, nil, err
	}
	taken := map[int]bool{}
	for _, e := range existing {
		taken[e.OrderNum] = true
	}
	var free []int
	for slot := 1; slot <= exercises.SlotsPerDay; slot++ {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	if len(free) < 2 {
		return nil, nil, errors.New("monday needs two free slots")
	}
	sort.Ints(free)

	bench, err := repo.Add(ctx, exercises.Exercise{
		DayID: monday, Name: "Bench Press", Weight: 100, Increment: 5, OrderNum: free[0],
	})
	if err != nil {
		return nil, nil, fmt.Errorf("add bench press: %w", err)
	}
	curl, err := repo.Add(ctx, exercises.Exercise{
		DayID: monday, Name: "Dumbbell Curl", IsOneArm: true, Weight: 25, Increment: 2.5, OrderNum: free[1],
	})
	if err != nil {
		return nil, nil, fmt.Errorf("add dumbbell curl: %w", err)
	}
	return bench, curl, nil
}

// fading reps: the first set is the strongest
func fakeSets() [logs.SetsPerExercise]int {
	var sets [logs.SetsPerExercise]int
	top := gofakeit.Number(8, 10)
	for i := range sets {
		sets[i] = max(top-gofakeit.Number(0, i), 5)
	}
	return sets
}

func buildDemoLogs(cal *calendar.Calendar, weeks int, bench, curl exercises.Exercise) []logs.Log {
	trailing := cal.TrailingWeeks(weeks)
	gap := len(trailing) - 2

	var out []logs.Log
	for i, weekStart := range trailing {
		if i == gap {
			continue
		}
		at := weekStart.Add(6 * time.Hour)
		for setNum, reps := range fakeSets() {
			out = append(out, logs.Log{
				ExerciseID: bench.ID, Weight: bench.Weight, SetNum: setNum + 1, Reps: &reps, CreatedAt: at,
			})
		}
		for _, isLeft := range []bool{true, false} {
			for setNum, reps := range fakeSets() {
				out = append(out, logs.Log{
					ExerciseID: curl.ID, Weight: curl.Weight, SetNum: setNum + 1, IsLeft: &isLeft, Reps: &reps, CreatedAt: at,
				})
			}
		}
	}
	return out
}
