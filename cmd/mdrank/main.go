package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mdrank/internal/bootstrap"
	dueldto "mdrank/internal/modules/duel/dto"
	exporterdto "mdrank/internal/modules/exporter/dto"
	previewdto "mdrank/internal/modules/preview/dto"
	rivalsdto "mdrank/internal/modules/rivals/dto"
	"mdrank/internal/platform/config"
	"mdrank/internal/platform/slug"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "mdrank",
		Short:         "Pairwise Elo ranking for markdown vaults",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "Obsidian vault path")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newRankCmd(&vaultPath))
	root.AddCommand(newHistoryCmd(&vaultPath))
	root.AddCommand(newDuelCmd(&vaultPath))
	root.AddCommand(newPoolsCmd(&vaultPath))
	root.AddCommand(newShowCmd(&vaultPath))
	root.AddCommand(newRivalsCmd(&vaultPath))
	root.AddCommand(newPublishCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	root.AddCommand(newArchiveCmd(&vaultPath))
	root.AddCommand(newExportersCmd(&vaultPath))
	root.AddCommand(newExportCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (config.Config, *bootstrap.App, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	app, err := bootstrap.New(cfg)
	return cfg, app, err
}

// resolvePool slugs an explicit --pool value, or falls back to the
// configured default pool.
func resolvePool(cfg config.Config, pool string) string {
	if strings.TrimSpace(pool) == "" {
		return cfg.DefaultPool
	}
	return slug.Make(pool)
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive comparison UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newRankCmd(vaultPath *string) *cobra.Command {
	var pool string
	var limit int
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print pool standings by rating",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			rows, err := app.DuelCLI.Standings(context.Background(), poolID, limit)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool %s has no items\n", poolID)
				return nil
			}
			for _, row := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-40s %6.0f  %d games\n", row.Rank, row.DisplayName, row.Rating, row.Games)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max rows (0 = all)")
	return cmd
}

func newHistoryCmd(vaultPath *string) *cobra.Command {
	var pool string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent comparisons, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			entries, err := app.DuelCLI.History(context.Background(), poolID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no comparisons recorded for pool %s\n", poolID)
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, e := range entries {
				at := time.UnixMilli(e.At).UTC().Format("2006-01-02 15:04")
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %.0f→%.0f  beat  %s %.0f→%.0f\n",
					at, e.WinnerName, e.WinnerBefore, e.WinnerAfter, e.LoserName, e.LoserBefore, e.LoserAfter)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max entries (0 = all)")
	return cmd
}

func newDuelCmd(vaultPath *string) *cobra.Command {
	duel := &cobra.Command{Use: "duel", Short: "Comparison session operations"}

	var pool string
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete all ratings and events for a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			out, err := app.DuelCLI.Reset(context.Background(), poolID, yes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool %s reset: %d items back at 1000\n", out.PoolID, len(out.Contenders))
			return nil
		},
	}
	reset.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the destructive reset")

	duel.AddCommand(reset)
	return duel
}

func newPoolsCmd(vaultPath *string) *cobra.Command {
	pools := &cobra.Command{Use: "pools", Short: "Pool management"}

	pools.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured pools with item counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.ListPools(context.Background())
			if err != nil {
				return err
			}
			for _, p := range out {
				folder := p.Folder
				if folder == "" {
					folder = "."
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d items\n", p.ID, folder, p.ItemCount)
			}
			return nil
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <pool>",
		Short: "Delete a pool's persisted ratings, events, and standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := slug.Make(args[0])
			if err := app.DuelCLI.DeletePoolStore(context.Background(), poolID, yes); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool %s deleted\n", poolID)
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive delete")
	pools.AddCommand(deleteCmd)
	return pools
}

func newShowCmd(vaultPath *string) *cobra.Command {
	var pool, mode string
	var page int
	var external bool
	cmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Preview an item's note or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			if external {
				out, err := app.PreviewCLI.OpenExternal(context.Background(), previewdto.OpenExternalInput{
					PoolID: poolID,
					ItemID: args[0],
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", out.Target)
				return nil
			}
			doc, err := app.PreviewCLI.Load(context.Background(), previewdto.LoadInput{
				PoolID: poolID,
				ItemID: args[0],
				Mode:   mode,
				Page:   page,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", doc.Title, doc.Kind)
			if doc.Kind == "pdf" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d\n", doc.Page, doc.TotalPages)
			}
			if strings.TrimSpace(doc.Content) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), doc.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	cmd.Flags().StringVar(&mode, "mode", "auto", "preview mode: auto|markdown|pdf")
	cmd.Flags().IntVar(&page, "page", 1, "pdf page")
	cmd.Flags().BoolVar(&external, "external", false, "launch the OS opener instead of printing")
	return cmd
}

func newRivalsCmd(vaultPath *string) *cobra.Command {
	rivals := &cobra.Command{Use: "rivals", Short: "Head-to-head records"}

	var pool string
	show := &cobra.Command{
		Use:   "show <item> [item-b]",
		Short: "Show one item's opponents, or the record for a pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			if len(args) == 2 {
				out, err := app.RivalsCLI.Rivalry(context.Background(), poolID, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s: %d-%d-%d over %d games\n",
					out.LabelA, out.LabelB, out.WinsA, out.WinsB, out.Draws, out.Total)
				return nil
			}
			out, err := app.RivalsCLI.Opponents(context.Background(), poolID, args[0])
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no rivalries recorded for %s\n", args[0])
				return nil
			}
			for _, r := range out {
				opponent, wins, losses := r.LabelB, r.WinsA, r.WinsB
				if r.ItemB == args[0] {
					opponent, wins, losses = r.LabelA, r.WinsB, r.WinsA
				}
				last := time.UnixMilli(r.LastAt).UTC().Format("2006-01-02")
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "vs %s\t%d-%d-%d\t%d games\tlast %s\n",
					opponent, wins, losses, r.Draws, r.Total, last)
			}
			return nil
		},
	}
	show.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	rivals.AddCommand(show)

	var topPool string
	var limit int
	top := &cobra.Command{
		Use:   "top",
		Short: "List the most-played rivalries in a pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, topPool)
			out, err := app.RivalsCLI.TopRivalries(context.Background(), poolID, limit)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no rivalries recorded for pool %s\n", poolID)
				return nil
			}
			for _, r := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s\t%d-%d-%d\t%d games\n",
					r.LabelA, r.LabelB, r.WinsA, r.WinsB, r.Draws, r.Total)
			}
			return nil
		},
	}
	top.Flags().StringVar(&topPool, "pool", "", "pool name (defaults to configured default)")
	top.Flags().IntVar(&limit, "limit", 10, "max rivalries")
	rivals.AddCommand(top)

	var pathPool string
	path := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find a beat-chain from one item to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pathPool)
			out, err := app.RivalsCLI.BeatPath(context.Background(), poolID, args[0], args[1])
			if err != nil {
				return err
			}
			if !out.Found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no beat path from %s to %s\n", args[0], args[1])
				return nil
			}
			labels := make([]string, 0, len(out.Nodes))
			for _, node := range out.Nodes {
				labels = append(labels, node.Label)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, " > "))
			return nil
		},
	}
	path.Flags().StringVar(&pathPool, "pool", "", "pool name (defaults to configured default)")
	rivals.AddCommand(path)

	return rivals
}

func newPublishCmd(vaultPath *string) *cobra.Command {
	var pool string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the standings table into a vault note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			out, err := app.DuelCLI.PublishStandings(context.Background(), poolID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "published %d rows to %s\n", out.RowCount, out.NotePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	return cmd
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild standings and rivalry projections from the event logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.DuelCLI.Reindex(ctx); err != nil {
				return err
			}
			pools, err := app.RosterCLI.ListPools(ctx)
			if err != nil {
				return err
			}
			for _, p := range pools {
				events, err := app.DuelCLI.ListEvents(ctx, p.ID)
				if err != nil {
					return err
				}
				rebuild := rivalsdto.RebuildInput{PoolID: p.ID}
				for _, e := range events {
					rebuild.Events = append(rebuild.Events, rivalsdto.RecordInput{
						PoolID: p.ID,
						ItemA:  e.ItemA,
						ItemB:  e.ItemB,
						Score:  e.Score,
						At:     e.At,
					})
				}
				if err := app.RivalsCLI.Rebuild(ctx, rebuild); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newArchiveCmd(vaultPath *string) *cobra.Command {
	archive := &cobra.Command{Use: "archive", Short: "Lossless journal operations"}

	var statsPool string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show journal entry counts and time range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			pool := resolvePool(cfg, statsPool)
			out, err := app.ArchiveCLI.Stats(context.Background(), pool)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool=%s entries=%d nodes=%s\n", out.Pool, out.EntryCount, strings.Join(out.Nodes, ","))
			if out.EntryCount > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "first=%s last=%s\n",
					time.UnixMilli(out.FirstAt).UTC().Format(time.RFC3339),
					time.UnixMilli(out.LastAt).UTC().Format(time.RFC3339))
			}
			items := make([]string, 0, len(out.Games))
			for item := range out.Games {
				items = append(items, item)
			}
			sort.Slice(items, func(i, j int) bool {
				if out.Games[items[i]] != out.Games[items[j]] {
					return out.Games[items[i]] > out.Games[items[j]]
				}
				return items[i] < items[j]
			})
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-40s %d games\n", item, out.Games[item])
			}
			return nil
		},
	}
	stats.Flags().StringVar(&statsPool, "pool", "", "pool name (defaults to configured default)")
	archive.AddCommand(stats)

	var exportPool, exportOut string
	export := &cobra.Command{
		Use:   "export --out <path>",
		Short: "Write the pool's journal as a signed bundle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportOut) == "" {
				return fmt.Errorf("--out is required")
			}
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			pool := resolvePool(cfg, exportPool)
			out, err := app.ArchiveCLI.Export(context.Background(), pool, exportOut)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s signed=%t\n", out.EntryCount, out.Path, out.Signed)
			return nil
		},
	}
	export.Flags().StringVar(&exportPool, "pool", "", "pool name (defaults to configured default)")
	export.Flags().StringVar(&exportOut, "out", "", "bundle destination path")
	archive.AddCommand(export)

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Merge a bundle into the local journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool=%s imported=%d skipped=%d\n", out.Pool, out.Imported, out.Skipped)
			return nil
		},
	}
	archive.AddCommand(importCmd)

	var rebuildPool string
	var rebuildYes bool
	rebuild := &cobra.Command{
		Use:   "rebuild",
		Short: "Replay the journal into a fresh store, replacing the current one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			pool := resolvePool(cfg, rebuildPool)
			ctx := context.Background()
			archived, err := app.ArchiveCLI.Events(ctx, pool)
			if err != nil {
				return err
			}
			events := make([]dueldto.EventOutput, 0, len(archived))
			for _, e := range archived {
				events = append(events, dueldto.EventOutput{
					At:    e.At,
					ItemA: e.ItemA,
					ItemB: e.ItemB,
					Score: e.Score,
				})
			}
			out, err := app.DuelCLI.RestoreStore(ctx, pool, events, rebuildYes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pool %s rebuilt from %d journal entries (%d in window)\n", out.PoolID, len(events), out.EventCount)
			return nil
		},
	}
	rebuild.Flags().StringVar(&rebuildPool, "pool", "", "pool name (defaults to configured default)")
	rebuild.Flags().BoolVar(&rebuildYes, "yes", false, "confirm replacing the current store")
	archive.AddCommand(rebuild)

	return archive
}

func newExportersCmd(vaultPath *string) *cobra.Command {
	exporters := &cobra.Command{Use: "exporters", Short: "Exporter plugin operations"}

	exporters.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exporter manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ExporterCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, e := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", e.Name, e.Version, e.Enabled, e.Binary)
			}
			return nil
		},
	})

	exporters.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate exporter checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			results, err := app.ExporterCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var formatsExporter string
	formats := &cobra.Command{
		Use:   "formats --exporter <name>",
		Short: "List formats offered by an exporter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(formatsExporter) == "" {
				return fmt.Errorf("--exporter is required")
			}
			_, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ExporterCLI.ListFormats(context.Background(), formatsExporter)
			if err != nil {
				return err
			}
			for _, f := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t.%s\t%s\t%s\n", f.ID, f.Extension, f.MIME, f.Title)
			}
			return nil
		},
	}
	formats.Flags().StringVar(&formatsExporter, "exporter", "", "exporter name")
	exporters.AddCommand(formats)

	return exporters
}

func newExportCmd(vaultPath *string) *cobra.Command {
	var pool, exporterName, formatID, outPath string
	var historyLimit int
	cmd := &cobra.Command{
		Use:   "export --exporter <name> --format <id> --out <path>",
		Short: "Render the current standings through an exporter plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exporterName) == "" || strings.TrimSpace(formatID) == "" {
				return fmt.Errorf("--exporter and --format are required")
			}
			cfg, app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			poolID := resolvePool(cfg, pool)
			ctx := context.Background()
			rows, err := app.DuelCLI.Standings(ctx, poolID, 0)
			if err != nil {
				return err
			}
			entries, err := app.DuelCLI.History(ctx, poolID)
			if err != nil {
				return err
			}
			if historyLimit > 0 && len(entries) > historyLimit {
				entries = entries[:historyLimit]
			}
			snapshot := exporterdto.Snapshot{
				Pool:        poolID,
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
				Standings:   make([]exporterdto.SnapshotRow, 0, len(rows)),
				History:     make([]exporterdto.SnapshotMatch, 0, len(entries)),
			}
			for _, row := range rows {
				snapshot.Standings = append(snapshot.Standings, exporterdto.SnapshotRow{
					Rank:   row.Rank,
					ItemID: row.ItemID,
					Name:   row.DisplayName,
					Rating: int(row.Rating),
					Games:  row.Games,
				})
			}
			for _, e := range entries {
				snapshot.History = append(snapshot.History, exporterdto.SnapshotMatch{
					At:     time.UnixMilli(e.At).UTC().Format(time.RFC3339),
					Winner: e.WinnerID,
					Loser:  e.LoserID,
				})
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			out, err := app.ExporterCLI.Render(ctx, exporterdto.RenderInput{
				ExporterName: exporterName,
				FormatID:     formatID,
				SnapshotJSON: string(payload),
			})
			if err != nil {
				return err
			}
			target := outPath
			if strings.TrimSpace(target) == "" {
				target = out.Filename
			}
			if dir := filepath.Dir(target); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := os.WriteFile(target, out.Data, 0o644); err != nil {
				return fmt.Errorf("write rendered output: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", target, out.MIME, len(out.Data))
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool name (defaults to configured default)")
	cmd.Flags().StringVar(&exporterName, "exporter", "", "exporter name")
	cmd.Flags().StringVar(&formatID, "format", "", "format id")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (defaults to the exporter's filename)")
	cmd.Flags().IntVar(&historyLimit, "history", 50, "max history entries in the snapshot")
	return cmd
}
