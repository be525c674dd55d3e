package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are the per-criterion scoring weights. Zero-valued structs fall
// back to the compiled-in defaults via OrDefault.
type Weights struct {
	GPA           float64 `yaml:"gpa" json:"gpa"`
	Experience    float64 `yaml:"experience" json:"experience"`
	Specialty     float64 `yaml:"specialty" json:"specialty"`
	Certification float64 `yaml:"certification" json:"certification"`
	Shadowing     float64 `yaml:"shadowing" json:"shadowing"`
	Prereqs       float64 `yaml:"prereqs" json:"prereqs"`
	GRE           float64 `yaml:"gre" json:"gre"`
}

// Directory is one scrapeable program-directory source.
type Directory struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Remote struct {
		DatabaseURL     string `yaml:"database_url" json:"database_url"`
		RedisURL        string `yaml:"redis_url" json:"redis_url"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
		RefreshHours    int    `yaml:"refresh_hours" json:"refresh_hours"`
	} `yaml:"remote" json:"remote"`

	Sources struct {
		Directories []Directory `yaml:"directories" json:"directories"`
	} `yaml:"sources" json:"sources"`

	Scoring struct {
		RecommendMinScore int     `yaml:"recommend_min_score" json:"recommend_min_score"`
		GPAGraceBand      float64 `yaml:"gpa_grace_band" json:"gpa_grace_band"`
		MinGRE            int     `yaml:"min_gre" json:"min_gre"`
		Weights           Weights `yaml:"weights" json:"weights"`
	} `yaml:"scoring" json:"scoring"`

	Retention struct {
		CatalogDays int `yaml:"catalog_days" json:"catalog_days"`
	} `yaml:"retention" json:"retention"`
}

// DefaultWeights mirror the product's stock criteria weighting.
var DefaultWeights = Weights{
	GPA:           25,
	Experience:    20,
	Specialty:     20,
	Certification: 15,
	Shadowing:     5,
	Prereqs:       10,
	GRE:           5,
}

// OrDefault returns w, or DefaultWeights when every weight is zero.
func (w Weights) OrDefault() Weights {
	if w == (Weights{}) {
		return DefaultWeights
	}
	return w
}

// RecommendMinScore is the "recommended" view-mode gate, default 60.
func (c Config) RecommendMinScore() int {
	if c.Scoring.RecommendMinScore > 0 {
		return c.Scoring.RecommendMinScore
	}
	return 60
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
