package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	exporterrpc "mdrank/internal/modules/exporter/adapter/out/rpc"
)

const (
	exporterName    = "reference"
	exporterVersion = "1.0.0"
)

type snapshot struct {
	Pool        string `json:"pool"`
	GeneratedAt string `json:"generated_at"`
	Standings   []struct {
		Rank   int    `json:"rank"`
		ItemID string `json:"item_id"`
		Name   string `json:"name"`
		Rating int    `json:"rating"`
		Games  int    `json:"games"`
	} `json:"standings"`
	History []struct {
		At     string `json:"at"`
		Winner string `json:"winner"`
		Loser  string `json:"loser"`
		Draw   bool   `json:"draw"`
	} `json:"history"`
}

type referenceExporter struct{}

func (referenceExporter) GetMetadata(context.Context, *exporterrpc.Empty) (*exporterrpc.Metadata, error) {
	return &exporterrpc.Metadata{Name: exporterName, Version: exporterVersion}, nil
}

func (referenceExporter) ListFormats(context.Context, *exporterrpc.Empty) (*exporterrpc.ListFormatsResponse, error) {
	return &exporterrpc.ListFormatsResponse{
		Formats: []exporterrpc.FormatDescriptor{
			{ID: "markdown-table", Title: "Markdown table", Extension: "md", MIME: "text/markdown"},
			{ID: "json", Title: "JSON snapshot", Extension: "json", MIME: "application/json"},
		},
	}, nil
}

func (referenceExporter) Render(_ context.Context, in *exporterrpc.RenderRequest) (*exporterrpc.RenderResponse, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(in.SnapshotJSON), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	pool := snap.Pool
	if pool == "" {
		pool = "default"
	}
	switch in.FormatID {
	case "markdown-table":
		return &exporterrpc.RenderResponse{
			Filename: fmt.Sprintf("rankings-%s.md", pool),
			MIME:     "text/markdown",
			Data:     []byte(renderMarkdown(snap)),
		}, nil
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		return &exporterrpc.RenderResponse{
			Filename: fmt.Sprintf("rankings-%s.json", pool),
			MIME:     "application/json",
			Data:     data,
		}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", in.FormatID)
	}
}

func renderMarkdown(snap snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rankings: %s\n\n", snap.Pool)
	if snap.GeneratedAt != "" {
		fmt.Fprintf(&b, "Generated at %s.\n\n", snap.GeneratedAt)
	}
	b.WriteString("| Rank | Item | Rating | Games |\n")
	b.WriteString("| ---: | --- | ---: | ---: |\n")
	for _, row := range snap.Standings {
		name := row.Name
		if name == "" {
			name = row.ItemID
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %d |\n", row.Rank, name, row.Rating, row.Games)
	}
	if len(snap.History) > 0 {
		b.WriteString("\n## Recent comparisons\n\n")
		for _, match := range snap.History {
			if match.Draw {
				fmt.Fprintf(&b, "- %s: %s drew with %s\n", match.At, match.Winner, match.Loser)
				continue
			}
			fmt.Fprintf(&b, "- %s: %s beat %s\n", match.At, match.Winner, match.Loser)
		}
	}
	return b.String()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: exporterrpc.HandshakeConfig,
		Plugins:         exporterrpc.ExporterMap(referenceExporter{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
