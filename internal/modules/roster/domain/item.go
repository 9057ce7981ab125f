package domain

import (
	"fmt"
	"strings"
)

// Pool is a named grouping of comparable items with its own folder and
// rating property configuration and its own persisted store.
type Pool struct {
	ID       string
	Name     string
	Folder   string
	Property string
}

func (p Pool) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("pool id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pool name is required")
	}
	if strings.TrimSpace(p.Property) == "" {
		return fmt.Errorf("pool rating property is required")
	}
	return nil
}

// Item is a comparable note. ID is the vault-relative path and stays
// stable across sessions; Rating and GamesPlayed are the live session
// values, seeded from the source property and overlaid by the store.
type Item struct {
	ID           string
	DisplayName  string
	Rating       float64
	GamesPlayed  int
	PoolID       string
	LastCompared string
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("item id is required")
	}
	if strings.TrimSpace(i.DisplayName) == "" {
		return fmt.Errorf("item display name is required")
	}
	if i.GamesPlayed < 0 {
		return fmt.Errorf("games played must not be negative")
	}
	if strings.TrimSpace(i.PoolID) == "" {
		return fmt.Errorf("item pool id is required")
	}
	return nil
}
