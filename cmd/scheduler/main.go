// Command scheduler runs one allocation over a roster spreadsheet and writes
// the distribution workbook, without starting the API server.
package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/lentera-edu/timetable-api/internal/roster"
	"github.com/lentera-edu/timetable-api/internal/timetable"
	"github.com/lentera-edu/timetable-api/internal/workbook"
	"github.com/lentera-edu/timetable-api/pkg/config"
	"github.com/lentera-edu/timetable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	policy, err := timetable.PolicyFromConfig(cfg.Scheduler)
	if err != nil {
		zapLogger.Fatal("invalid scheduler config", zap.Error(err))
	}
	prefs, err := timetable.ParseFloorPreferences(cfg.Rooms.FloorPreferences)
	if err != nil {
		zapLogger.Fatal("invalid room config", zap.Error(err))
	}

	data, err := os.ReadFile(cfg.Batch.RosterPath)
	if err != nil {
		zapLogger.Fatal("read roster", zap.String("path", cfg.Batch.RosterPath), zap.Error(err))
	}
	offerings, err := roster.ParseExcel(data)
	if err != nil {
		zapLogger.Fatal("parse roster", zap.String("path", cfg.Batch.RosterPath), zap.Error(err))
	}

	engine := timetable.NewEngine(policy, timetable.DefaultCatalog(), prefs, zapLogger)
	entries, failures, err := engine.Allocate(offerings)
	if err != nil {
		zapLogger.Fatal("allocation failed", zap.Error(err))
	}

	output, err := workbook.Bytes(entries, failures)
	if err != nil {
		zapLogger.Fatal("render workbook", zap.Error(err))
	}
	if err := os.WriteFile(cfg.Batch.OutputPath, output, 0o644); err != nil {
		zapLogger.Fatal("write workbook", zap.String("path", cfg.Batch.OutputPath), zap.Error(err))
	}

	scheduled := 0
	for _, entry := range entries {
		if !entry.Fallback() {
			scheduled++
		}
	}
	zapLogger.Info("allocation finished",
		zap.String("output", cfg.Batch.OutputPath),
		zap.Int("offerings", len(offerings)),
		zap.Int("placed", scheduled),
		zap.Int("fallback", len(failures)),
	)
}
