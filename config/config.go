package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config mirrors the JSON document the cron job is launched with: one base
// section shared by every team plus a team list.
type Config struct {
	Base  Base   `json:"base"`
	Teams []Team `json:"team"`
}

// Base holds credentials and the run-wide knobs.
type Base struct {
	SlackBotToken  string `json:"slack_bot_token"`
	NotionAPIToken string `json:"notion_api_token"`
	DatabaseID     string `json:"database_id"`
	NotionVersion  string `json:"notion_version"`
	DayThreshold   int    `json:"day_threshold"`

	// Variant toggles; see CarryForward for the default handling.
	CarryForwardPeriod   *bool `json:"carry_forward_period,omitempty"`
	BootstrapFirstRecord bool  `json:"bootstrap_first_record,omitempty"`
	SequenceBase         int   `json:"sequence_base,omitempty"`

	ServerAddr string     `json:"server_addr,omitempty"`
	LLM        *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig enables optional agenda drafting; absent means pages are created
// without an agenda body.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Team configures one team's check-in generation.
type Team struct {
	ChannelID     string   `json:"channel_id"`
	TeamName      string   `json:"team_name"`
	BaseTitle     string   `json:"base_title"`
	Host          string   `json:"host"`
	Participation []string `json:"participation"`
	Blacklist     []string `json:"blacklist,omitempty"`
	AgendaTopic   string   `json:"agenda_topic,omitempty"`
}

// MissingConfigFieldError reports a required field absent from the config
// before any network call is made.
type MissingConfigFieldError struct {
	Section string
	Key     string
}

func (e *MissingConfigFieldError) Error() string {
	return fmt.Sprintf("missing required %s config field %q", e.Section, e.Key)
}

// Load reads and validates the JSON config from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every required field; the first missing one aborts the run.
func (c Config) Validate() error {
	base := map[string]bool{
		"slack_bot_token":  c.Base.SlackBotToken != "",
		"notion_api_token": c.Base.NotionAPIToken != "",
		"database_id":      c.Base.DatabaseID != "",
		"notion_version":   c.Base.NotionVersion != "",
		"day_threshold":    c.Base.DayThreshold > 0,
	}
	for _, key := range []string{"slack_bot_token", "notion_api_token", "database_id", "notion_version", "day_threshold"} {
		if !base[key] {
			return &MissingConfigFieldError{Section: "base", Key: key}
		}
	}

	for i, team := range c.Teams {
		section := fmt.Sprintf("team[%d]", i)
		fields := map[string]bool{
			"channel_id":    team.ChannelID != "",
			"team_name":     team.TeamName != "",
			"base_title":    team.BaseTitle != "",
			"host":          team.Host != "",
			"participation": len(team.Participation) > 0,
		}
		for _, key := range []string{"channel_id", "team_name", "base_title", "host", "participation"} {
			if !fields[key] {
				return &MissingConfigFieldError{Section: section, Key: key}
			}
		}
	}
	return nil
}

// CarryForward resolves the carry_forward_period toggle; unset means true,
// matching the documented carry-forward policy for quarter labels.
func (b Base) CarryForward() bool {
	if b.CarryForwardPeriod == nil {
		return true
	}
	return *b.CarryForwardPeriod
}
