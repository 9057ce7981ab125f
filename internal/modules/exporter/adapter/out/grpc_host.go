package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	exporterrpc "mdrank/internal/modules/exporter/adapter/out/rpc"
	"mdrank/internal/modules/exporter/domain"
	exporterout "mdrank/internal/modules/exporter/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() exporterout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) ListFormats(ctx context.Context, manifest domain.Manifest) ([]domain.FormatDescriptor, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListFormats(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	out := make([]domain.FormatDescriptor, 0, len(response.Formats))
	for _, format := range response.Formats {
		out = append(out, domain.FormatDescriptor{
			ID:        format.ID,
			Title:     format.Title,
			Extension: format.Extension,
			MIME:      format.MIME,
		})
	}
	return out, nil
}

func (h *GRPCHost) Render(ctx context.Context, manifest domain.Manifest, input domain.RenderRequest) (domain.RenderResult, error) {
	client, closeFn, err := h.connect(ctx, manifest, defaultStartTimeout)
	if err != nil {
		return domain.RenderResult{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Render(callCtx, &exporterrpc.RenderRequest{
		FormatID:     input.FormatID,
		SnapshotJSON: input.SnapshotJSON,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.RenderResult{}, fmt.Errorf("%w: format %s", domain.ErrExporterTimeout, input.FormatID)
		}
		return domain.RenderResult{}, fmt.Errorf("render: %w", err)
	}
	return domain.RenderResult{
		Filename: response.Filename,
		MIME:     response.MIME,
		Data:     response.Data,
	}, nil
}

func (h *GRPCHost) connect(ctx context.Context, manifest domain.Manifest, startTimeout time.Duration) (exporterrpc.RankingExporterClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  exporterrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          exporterrpc.ExporterMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start exporter client: %w", err)
	}
	raw, err := rpcClient.Dispense(exporterrpc.ExporterMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense exporter: %w", err)
	}
	typed, ok := raw.(exporterrpc.RankingExporterClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("exporter rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
