package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "zhipai" {
		t.Errorf("App.Name = %s, want zhipai", cfg.App.Name)
	}
	if cfg.App.Port != 7021 {
		t.Errorf("App.Port = %d, want 7021", cfg.App.Port)
	}
	if cfg.Scheduler.SolveTimeout != 30*time.Second {
		t.Errorf("SolveTimeout = %v, want 30s", cfg.Scheduler.SolveTimeout)
	}
	if cfg.Scheduler.SolverWorkers != 1 {
		t.Errorf("SolverWorkers = %d, want 1", cfg.Scheduler.SolverWorkers)
	}
	if cfg.API.RateLimit != 100 {
		t.Errorf("API.RateLimit = %d, want 100", cfg.API.RateLimit)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if !cfg.IsDevelopment() {
		t.Error("缺省环境应为 development")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SCHEDULER_SOLVE_TIMEOUT", "5s")
	t.Setenv("SCHEDULER_SOLVER_WORKERS", "4")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("App.Port = %d, want 9090", cfg.App.Port)
	}
	if !cfg.IsProduction() {
		t.Error("APP_ENV=production 应判定为生产环境")
	}
	if cfg.Scheduler.SolveTimeout != 5*time.Second {
		t.Errorf("SolveTimeout = %v, want 5s", cfg.Scheduler.SolveTimeout)
	}
	if cfg.Scheduler.SolverWorkers != 4 {
		t.Errorf("SolverWorkers = %d, want 4", cfg.Scheduler.SolverWorkers)
	}
	if cfg.Metrics.Enabled {
		t.Error("METRICS_ENABLED=false 未生效")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("SCHEDULER_SOLVE_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 7021 {
		t.Errorf("非法端口应回退缺省: %d", cfg.App.Port)
	}
	if cfg.Scheduler.SolveTimeout != 30*time.Second {
		t.Errorf("非法超时应回退缺省: %v", cfg.Scheduler.SolveTimeout)
	}
}
