package bootstrap

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	archiveinadapter "mdrank/internal/modules/archive/adapter/in"
	archiveoutadapter "mdrank/internal/modules/archive/adapter/out"
	archiveservice "mdrank/internal/modules/archive/service"
	archiveusecase "mdrank/internal/modules/archive/usecase"
	duelinadapter "mdrank/internal/modules/duel/adapter/in"
	dueloutadapter "mdrank/internal/modules/duel/adapter/out"
	duelin "mdrank/internal/modules/duel/port/in"
	duelservice "mdrank/internal/modules/duel/service"
	duelusecase "mdrank/internal/modules/duel/usecase"
	exporterinadapter "mdrank/internal/modules/exporter/adapter/in"
	exporteroutadapter "mdrank/internal/modules/exporter/adapter/out"
	exporterservice "mdrank/internal/modules/exporter/service"
	exporterusecase "mdrank/internal/modules/exporter/usecase"
	previewinadapter "mdrank/internal/modules/preview/adapter/in"
	previewoutadapter "mdrank/internal/modules/preview/adapter/out"
	previewservice "mdrank/internal/modules/preview/service"
	previewusecase "mdrank/internal/modules/preview/usecase"
	rivalsinadapter "mdrank/internal/modules/rivals/adapter/in"
	rivalsoutadapter "mdrank/internal/modules/rivals/adapter/out"
	rivalsservice "mdrank/internal/modules/rivals/service"
	rivalsusecase "mdrank/internal/modules/rivals/usecase"
	rosterinadapter "mdrank/internal/modules/roster/adapter/in"
	rosteroutadapter "mdrank/internal/modules/roster/adapter/out"
	rosterdomain "mdrank/internal/modules/roster/domain"
	rosterservice "mdrank/internal/modules/roster/service"
	rosterusecase "mdrank/internal/modules/roster/usecase"
	"mdrank/internal/platform/clock"
	"mdrank/internal/platform/config"
	"mdrank/internal/platform/id"
	"mdrank/internal/platform/logger"
	uiapp "mdrank/internal/ui/app"
)

// App holds the fully wired inbound handlers. Construction happens once
// per process in New; commands and the TUI only ever see these.
type App struct {
	RosterCLI   rosterinadapter.CLIHandler
	DuelCLI     duelinadapter.CLIHandler
	RivalsCLI   rivalsinadapter.CLIHandler
	ArchiveCLI  archiveinadapter.CLIHandler
	PreviewCLI  previewinadapter.CLIHandler
	PreviewTUI  previewinadapter.TUIHandler
	ExporterCLI exporterinadapter.CLIHandler

	// DuelTUI exposes the duel usecase directly; the TUI drives the
	// session state machine and needs more than the CLI surface.
	DuelTUI duelin.Usecase

	Log *logger.Logger
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	// The log sink and the sqlite files live under the data dir; it
	// must exist before the first adapter opens anything on a fresh
	// vault.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	node, err := os.Hostname()
	if err != nil || node == "" {
		node = "local"
	}
	archiveUC := archiveusecase.NewInteractor(archiveservice.NewArchiveService(
		clk,
		ids,
		node,
		[]byte(os.Getenv("MDRANK_ARCHIVE_KEY")),
		archiveoutadapter.NewFileJournalStore(cfg.JournalDir),
		archiveoutadapter.NewFileBundleStore(),
	))

	rivalryStore, err := rivalsoutadapter.NewSQLiteRivalryStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new rivalry store: %w", err)
	}
	rivalsUC := rivalsusecase.NewInteractor(rivalsservice.NewRivalsService(rivalryStore))

	pools := make([]rosterdomain.Pool, 0, len(cfg.Pools))
	for _, p := range cfg.Pools {
		pools = append(pools, rosterdomain.Pool{
			ID:       p.ID(),
			Name:     p.Name,
			Folder:   p.Folder,
			Property: p.Property,
		})
	}
	rosterSvc, err := rosterservice.NewRosterService(pools, rosteroutadapter.NewVaultItemSource(cfg.VaultPath))
	if err != nil {
		return nil, fmt.Errorf("new roster service: %w", err)
	}
	rosterUC := rosterusecase.NewInteractor(rosterSvc)

	standings, err := dueloutadapter.NewSQLiteStandingsProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new standings projector: %w", err)
	}
	duelUC := duelusecase.NewInteractor(duelservice.NewDuelService(
		clk,
		rng,
		log,
		dueloutadapter.NewRosterContenderAdapter(rosterUC),
		dueloutadapter.NewJSONStoreGateway(dueloutadapter.NewOSDocumentStore(cfg.DataDir), log),
		standings,
		dueloutadapter.NewRivalsRecorderAdapter(rivalsUC),
		dueloutadapter.NewArchiveJournalAdapter(archiveUC),
		dueloutadapter.NewVaultNotePublisher(cfg.VaultPath, &cfg),
	))

	previewUC := previewusecase.NewInteractor(previewservice.NewPreviewService(
		previewoutadapter.NewVaultNoteReader(),
		previewoutadapter.NewLocalPDFReader(),
		previewoutadapter.NewRosterItemAdapter(rosterUC, cfg.VaultPath),
		previewoutadapter.NewOSExternalLauncher(),
	))

	exporterUC := exporterusecase.NewInteractor(exporterservice.NewExporterService(
		exporteroutadapter.NewFileManifestStore(cfg.VaultPath, cfg.ExportersPath),
		exporteroutadapter.NewGRPCHost(),
	))

	return &App{
		RosterCLI:   rosterinadapter.NewCLIHandler(rosterUC),
		DuelCLI:     duelinadapter.NewCLIHandler(duelUC),
		RivalsCLI:   rivalsinadapter.NewCLIHandler(rivalsUC),
		ArchiveCLI:  archiveinadapter.NewCLIHandler(archiveUC),
		PreviewCLI:  previewinadapter.NewCLIHandler(previewUC),
		PreviewTUI:  previewinadapter.NewTUIHandler(previewUC),
		ExporterCLI: exporterinadapter.NewCLIHandler(exporterUC),
		DuelTUI:     duelUC,
		Log:         log,
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(
		cfg.VaultPath,
		cfg.DefaultPool,
		app.DuelTUI,
		app.PreviewTUI,
		app.RosterCLI,
		app.ArchiveCLI,
		app.ExporterCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
