// Package config loads the collaborator-store connection profile.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type StoreProfile struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LoadStoreProfile reads a store profile from the given file.
func LoadStoreProfile(profilePath string) (*StoreProfile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5432)
	v.SetDefault("sslmode", "disable")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profile StoreProfile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse store profile: %w", err)
	}
	if profile.User == "" || profile.Database == "" {
		return nil, fmt.Errorf("store profile requires user and database")
	}
	return &profile, nil
}

// DSN renders the profile as a lib/pq connection string.
func (p *StoreProfile) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
