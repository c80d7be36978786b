package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fallingsky/internal/core"
)

// DefaultPlayer is the profile name used when none is given.
const DefaultPlayer = "player"

// LoadProfile returns the named profile. A missing profile yields the
// defaults; so does a row that cannot be decoded or fails validation, which
// is logged and left in place until the next save overwrites it.
func (s *Store) LoadProfile(name string) (core.Profile, error) {
	if name == "" {
		name = DefaultPlayer
	}

	var data string
	err := s.db.QueryRow("SELECT data FROM profiles WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultProfile(name), nil
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("storage: cannot load profile %q: %w", name, err)
	}

	var p core.Profile
	if err := yaml.Unmarshal([]byte(data), &p); err != nil {
		s.logger.Warn("corrupt profile, using defaults", "name", name, "err", err)
		return core.DefaultProfile(name), nil
	}
	if err := p.Validate(); err != nil {
		s.logger.Warn("invalid profile, using defaults", "name", name, "err", err)
		return core.DefaultProfile(name), nil
	}
	p.Name = name
	return p, nil
}

// SaveProfile inserts or replaces the profile under its name.
func (s *Store) SaveProfile(p core.Profile) error {
	if p.Name == "" {
		p.Name = DefaultPlayer
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("storage: cannot save profile %q: %w", p.Name, err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile %q: %w", p.Name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO profiles (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.Name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile %q: %w", p.Name, err)
	}
	return nil
}

// ListProfiles returns the saved profile names in alphabetical order.
func (s *Store) ListProfiles() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM profiles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// ResetProfile deletes one profile; the next load returns defaults.
func (s *Store) ResetProfile(name string) error {
	if _, err := s.db.Exec("DELETE FROM profiles WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot reset profile %q: %w", name, err)
	}
	return nil
}

// ResetProfiles deletes every profile.
func (s *Store) ResetProfiles() error {
	if _, err := s.db.Exec("DELETE FROM profiles"); err != nil {
		return fmt.Errorf("storage: cannot reset profiles: %w", err)
	}
	return nil
}
