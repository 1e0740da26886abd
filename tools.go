package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Cortexa-LLC/mcp/src/invoicegen/invoice"
)

// MCP tool parameter key constants — shared between schema definitions and
// argument extraction.
const (
	argPath = "path"
)

// invoiceService is the slice of *invoice.Generator the tools need, so
// tests can inject a fake.
type invoiceService interface {
	Generate(ctx context.Context, filePath string) (string, error)
	Inspect(ctx context.Context, pdfPath string) (*invoice.Summary, error)
	GetGeneratorInfo(ctx context.Context) string
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the invoice tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, log, err := newGenerator(v)
			if err != nil {
				return err
			}
			defer syncLogger(log)

			s := server.NewMCPServer(serverName, serverVersion)
			registerTools(s, gen)
			return runServer(log, func() error { return server.ServeStdio(s) })
		},
	}
}

// runServer blocks in serve and reports a failure through log.
func runServer(log *zap.Logger, serve func() error) error {
	if err := serve(); err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, svc invoiceService) {
	s.AddTool(
		mcp.NewTool("generate_invoice",
			mcp.WithDescription("Render one invoice spreadsheet named {number}-{date}.xlsx as a PDF. "+
				"Relative paths resolve against the configured base directory. Returns the PDF path."),
			mcp.WithString(argPath,
				mcp.Required(),
				mcp.Description("Path of the invoice spreadsheet"),
			),
		),
		generateHandler(svc),
	)

	s.AddTool(
		mcp.NewTool("inspect_invoice",
			mcp.WithDescription("Read a rendered invoice PDF back and report its number, date and total due."),
			mcp.WithString(argPath,
				mcp.Required(),
				mcp.Description("Path of the rendered invoice PDF"),
			),
		),
		inspectHandler(svc),
	)

	// get_generator_info — list formats and configuration
	s.AddTool(
		mcp.NewTool("get_generator_info",
			mcp.WithDescription("Return supported input formats and the active configuration."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(svc.GetGeneratorInfo(ctx)), nil
		},
	)
}

func generateHandler(svc invoiceService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, ok := req.Params.Arguments[argPath].(string)
		if !ok || path == "" {
			return mcp.NewToolResultError(argPath + " is required"), nil
		}
		out, err := svc.Generate(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", invoice.Kind(err), err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

func inspectHandler(svc invoiceService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, ok := req.Params.Arguments[argPath].(string)
		if !ok || path == "" {
			return mcp.NewToolResultError(argPath + " is required"), nil
		}
		sum, err := svc.Inspect(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", invoice.Kind(err), err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Invoice nr. %s\nDate %s\nTotal due $%s",
			sum.Number, sum.Date, sum.TotalDue)), nil
	}
}
