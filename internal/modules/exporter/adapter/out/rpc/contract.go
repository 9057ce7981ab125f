package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	ExporterMapKey    = "mdrank"
	serviceName       = "mdrank.exporter.v1.RankingExporter"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodListFormats = "/" + serviceName + "/ListFormats"
	methodRender      = "/" + serviceName + "/Render"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "MDRANK_EXPORTER",
	MagicCookieValue: "mdrank",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type FormatDescriptor struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Extension string `json:"extension"`
	MIME      string `json:"mime"`
}

type ListFormatsResponse struct {
	Formats []FormatDescriptor `json:"formats"`
}

type RenderRequest struct {
	FormatID     string `json:"format_id"`
	SnapshotJSON string `json:"snapshot_json"`
}

type RenderResponse struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     []byte `json:"data"`
}

type RankingExporterServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListFormats(ctx context.Context, in *Empty) (*ListFormatsResponse, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type RankingExporterClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListFormats(ctx context.Context) (*ListFormatsResponse, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type rankingExporterClient struct {
	conn *grpc.ClientConn
}

func NewRankingExporterClient(conn *grpc.ClientConn) RankingExporterClient {
	return &rankingExporterClient{conn: conn}
}

func (c *rankingExporterClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rankingExporterClient) ListFormats(ctx context.Context) (*ListFormatsResponse, error) {
	out := &ListFormatsResponse{}
	if err := c.conn.Invoke(ctx, methodListFormats, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rankingExporterClient) Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error) {
	out := &RenderResponse{}
	if err := c.conn.Invoke(ctx, methodRender, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterRankingExporterServer(server grpc.ServiceRegistrar, impl RankingExporterServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*RankingExporterServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListFormats",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListFormats(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListFormats}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListFormats(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Render",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &RenderRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Render(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRender}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*RenderRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Render(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/exporter-rpc-v1.proto",
	}, impl)
}

type GRPCExporter struct {
	plugin.NetRPCUnsupportedPlugin
	Impl RankingExporterServer
}

func (p *GRPCExporter) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterRankingExporterServer(server, p.Impl)
	return nil
}

func (p *GRPCExporter) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewRankingExporterClient(conn), nil
}

func ExporterMap(impl RankingExporterServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ExporterMapKey: &GRPCExporter{Impl: impl},
	}
}
