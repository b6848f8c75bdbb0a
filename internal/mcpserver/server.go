// Package mcpserver exposes the form catalog and field extraction as MCP
// tools over stdio, so agent clients can fill forms without the HTTP API.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/prompts/fill"
	"github.com/jackzampolin/formfill/internal/render"
)

// Tool names.
const (
	ToolListForms     = "list_forms"
	ToolDescribeForm  = "describe_form"
	ToolExtractFields = "extract_fields"
	ToolBuildPrompt   = "build_prompt"
)

// Config holds the MCP server dependencies.
type Config struct {
	Name      string
	Version   string
	Catalog   *forms.Catalog
	Extractor *extract.Client
	Renderer  *render.Renderer
	Logger    *slog.Logger
}

// Server wraps an MCP server with the formfill tools registered.
type Server struct {
	catalog   *forms.Catalog
	extractor *extract.Client
	renderer  *render.Renderer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// New creates the MCP server.
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if cfg.Name == "" {
		cfg.Name = "formfill"
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		catalog:   cfg.Catalog,
		extractor: cfg.Extractor,
		renderer:  cfg.Renderer,
		logger:    cfg.Logger,
		mcpServer: server.NewMCPServer(
			cfg.Name,
			cfg.Version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		ToolListForms,
		mcp.WithDescription("List the forms that can be filled, with their page and field counts"),
	), s.handleListForms)

	s.mcpServer.AddTool(mcp.NewTool(
		ToolDescribeForm,
		mcp.WithDescription("Describe every field of a form: kind, label, options and bounds"),
		mcp.WithString("form",
			mcp.Required(),
			mcp.Description("Form ID or title"),
		),
	), s.handleDescribeForm)

	s.mcpServer.AddTool(mcp.NewTool(
		ToolBuildPrompt,
		mcp.WithDescription("Show the system prompt sent to the completion service for a form"),
		mcp.WithString("form",
			mcp.Required(),
			mcp.Description("Form ID or title"),
		),
	), s.handleBuildPrompt)

	s.mcpServer.AddTool(mcp.NewTool(
		ToolExtractFields,
		mcp.WithDescription("Extract form field values from a free-text description"),
		mcp.WithString("form",
			mcp.Required(),
			mcp.Description("Form ID or title"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Natural language description to extract values from"),
		),
	), s.handleExtractFields)
}

// Serve runs the server on stdin/stdout until the input closes.
func (s *Server) Serve() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

type formListing struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Pages     int    `json:"pages"`
	Fields    int    `json:"fields"`
	MultiPage bool   `json:"multi_page"`
}

func (s *Server) handleListForms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []formListing
	for _, f := range s.catalog.Forms() {
		out = append(out, formListing{
			ID:        f.ID,
			Title:     f.Title,
			Pages:     f.PageCount(),
			Fields:    f.FieldCount(),
			MultiPage: f.MultiPage(),
		})
	}
	return jsonResult(out)
}

type formDescription struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Pages       []pageDescription  `json:"pages"`
	Fields      forms.PromptSchema `json:"fields"`
}

type pageDescription struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

func (s *Server) handleDescribeForm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form, errResult := s.lookupForm(request)
	if errResult != nil {
		return errResult, nil
	}

	desc := formDescription{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Fields:      form.PromptSchema(),
	}
	for _, p := range form.Pages {
		pd := pageDescription{ID: p.ID, Title: p.Title}
		for _, f := range p.Fields {
			pd.Fields = append(pd.Fields, f.Name)
		}
		desc.Pages = append(desc.Pages, pd)
	}
	return jsonResult(desc)
}

func (s *Server) handleBuildPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form, errResult := s.lookupForm(request)
	if errResult != nil {
		return errResult, nil
	}
	_, text, err := fill.Build(form)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// extraction is the extract_fields reply. Values holds the extracted
// fields as the form would store them after normalization.
type extraction struct {
	Form        string          `json:"form"`
	Values      map[string]any  `json:"values"`
	Unsupported []string        `json:"unsupported_fields"`
	Dropped     []string        `json:"dropped,omitempty"`
	Result      *extract.Result `json:"result"`
	Notice      string          `json:"notice,omitempty"`
}

func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form, errResult := s.lookupForm(request)
	if errResult != nil {
		return errResult, nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.extractor == nil {
		return mcp.NewToolResultError(extract.Notice(extract.ErrMissingCredential)), nil
	}

	result, err := s.extractor.Extract(ctx, text, form)
	out := extraction{
		Form:        form.ID,
		Values:      map[string]any{},
		Unsupported: result.Unsupported,
		Result:      result,
		Notice:      extract.Notice(err),
	}
	if err != nil {
		s.logger.Warn("mcp extraction failed", "form", form.ID, "error", err)
	}
	for name, v := range result.Supported {
		spec, ok := form.Field(name)
		if !ok {
			out.Dropped = append(out.Dropped, name)
			continue
		}
		out.Values[name] = s.renderer.Normalize(spec, v)
	}
	sort.Strings(out.Dropped)
	return jsonResult(out)
}

func (s *Server) lookupForm(request mcp.CallToolRequest) (*forms.FormSchema, *mcp.CallToolResult) {
	id, err := request.RequireString("form")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	form, ok := s.catalog.Form(id)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("unknown form %q (available: %v)", id, s.catalog.IDs()))
	}
	return form, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
