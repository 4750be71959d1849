package mcp

import (
	"context"
	_ "embed"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	WidgetURI      = "ui://widget/lists.html"
	WidgetMIMEType = "text/html+skybridge"
)

//go:embed widget/lists.html
var widgetHTML string

// WidgetHTML is the document tools render into.
func WidgetHTML() string {
	return widgetHTML
}

func widgetMeta(invoking, invoked string) mcpsdk.Meta {
	return mcpsdk.Meta{
		"openai/outputTemplate":          WidgetURI,
		"openai/toolInvocation/invoking": invoking,
		"openai/toolInvocation/invoked":  invoked,
		"openai/widgetAccessible":        true,
	}
}

func (s *Server) registerResources(srv *mcpsdk.Server) {
	srv.AddResource(&mcpsdk.Resource{
		URI:         WidgetURI,
		Name:        "lists-widget",
		Title:       "Lists",
		Description: "Renders the view returned by list tools.",
		MIMEType:    WidgetMIMEType,
	}, func(_ context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
		uri := ""
		if req != nil && req.Params != nil {
			uri = req.Params.URI
		}
		if uri != WidgetURI {
			return nil, mcpsdk.ResourceNotFoundError(uri)
		}
		return &mcpsdk.ReadResourceResult{
			Contents: []*mcpsdk.ResourceContents{{
				URI:      WidgetURI,
				MIMEType: WidgetMIMEType,
				Text:     widgetHTML,
			}},
		}, nil
	})
}
