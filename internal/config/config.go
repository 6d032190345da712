package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "PERFMETRICS_"

type Application struct {
	Host      string    `koanf:"host"`
	Port      int       `koanf:"port"`
	Database  Database  `koanf:"db"`
	Metrics   Metrics   `koanf:"metrics"`
	Narrative Narrative `koanf:"narrative"`
	Portfolio Portfolio `koanf:"portfolio"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
	// MaxConns bounds the pool. Keep it above portfolio.concurrency, every portfolio worker holds a connection.
	MaxConns int `koanf:"maxconns"`
	MinConns int `koanf:"minconns"`
}

// Metrics tunes the earned value calculation.
type Metrics struct {
	// ActualCostRatio is the multiplier applied to earned value to estimate actual cost.
	ActualCostRatio float64 `koanf:"actualcostratio"`
	Precision       int     `koanf:"precision"`
	// CurveMode is "snapshot" or "linear".
	CurveMode string `koanf:"curvemode"`
}

type Narrative struct {
	Enabled    bool   `koanf:"enabled"`
	ApiKey     string `koanf:"apikey"`
	Model      string `koanf:"model"`
	SampleSize int    `koanf:"samplesize"`
	TimeoutSec int    `koanf:"timeoutsec"`
}

type Portfolio struct {
	Concurrency int `koanf:"concurrency"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:8181",
		Port: 8181,
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "perfmetrics",
			Pass:     "",
			Name:     "perfmetrics",
			Schema:   "perfmetrics",
			MaxConns: 10,
			MinConns: 1,
		},
		Metrics: Metrics{
			ActualCostRatio: 1.08,
			Precision:       2,
			CurveMode:       "snapshot",
		},
		Narrative: Narrative{
			Enabled:    false,
			Model:      "gemini-2.5-flash",
			SampleSize: 10,
			TimeoutSec: 30,
		},
		Portfolio: Portfolio{
			Concurrency: 4,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
