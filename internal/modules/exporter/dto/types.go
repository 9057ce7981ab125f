package dto

type ExporterInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type FormatInfo struct {
	ID        string
	Title     string
	Extension string
	MIME      string
}

type RenderInput struct {
	ExporterName string
	FormatID     string
	SnapshotJSON string
}

type RenderOutput struct {
	ExporterName string
	FormatID     string
	Filename     string
	MIME         string
	Data         []byte
}

// Snapshot is the payload handed to exporters, serialized as JSON. The
// CLI assembles it from the current standings and recent comparisons.
type Snapshot struct {
	Pool        string          `json:"pool"`
	GeneratedAt string          `json:"generated_at"`
	Standings   []SnapshotRow   `json:"standings"`
	History     []SnapshotMatch `json:"history"`
}

type SnapshotRow struct {
	Rank   int    `json:"rank"`
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Games  int    `json:"games"`
}

type SnapshotMatch struct {
	At     string `json:"at"`
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Draw   bool   `json:"draw"`
}
