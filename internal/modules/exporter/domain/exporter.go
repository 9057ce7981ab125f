package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrExporterDisabled = errors.New("exporter is disabled")
	ErrChecksumMismatch = errors.New("exporter checksum mismatch")
	ErrFormatNotFound   = errors.New("exporter format not found")
	ErrExporterTimeout  = errors.New("exporter timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed exporter binary. The manifest file is
// the only trust anchor: a binary whose checksum drifts from the manifest
// is never started.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("exporter name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("exporter version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("exporter binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("exporter sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// FormatDescriptor is one output format an exporter advertises.
type FormatDescriptor struct {
	ID        string
	Title     string
	Extension string
	MIME      string
}

func (d FormatDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("format id is required")
	}
	return nil
}

type RenderRequest struct {
	FormatID     string
	SnapshotJSON string
}

func (r RenderRequest) Validate() error {
	if r.FormatID == "" {
		return fmt.Errorf("format id is required")
	}
	if r.SnapshotJSON == "" {
		return fmt.Errorf("snapshot is required")
	}
	return nil
}

type RenderResult struct {
	Filename string
	MIME     string
	Data     []byte
}

func (r RenderResult) Validate() error {
	if r.Filename == "" {
		return fmt.Errorf("render filename is required")
	}
	if len(r.Data) == 0 {
		return fmt.Errorf("render data is empty")
	}
	return nil
}
