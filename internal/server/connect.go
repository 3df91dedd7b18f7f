// Package server exposes framing detection as a Connect RPC service.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"connectrpc.com/connect"
	framing "go.framing.dev/pkg"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const AnalyzeProcedure = "/framing.v1.FramingService/Analyze"

// FramingServiceHandler implements the Connect RPC FramingService
type FramingServiceHandler struct {
	logger *log.Logger
}

func NewFramingServiceHandler(logger *log.Logger) *FramingServiceHandler {
	return &FramingServiceHandler{logger: logger}
}

// Analyze compiles both inputs and looks for a framing if in current.
// Every request is independent; no buffer history is kept between calls.
func (h *FramingServiceHandler) Analyze(
	ctx context.Context,
	req *connect.Request[AnalyzeRequest],
) (*connect.Response[AnalyzeResponse], error) {
	if req.Msg.Previous == "" && req.Msg.Current == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, nil)
	}

	resp := &AnalyzeResponse{
		Tokens: []Token{},
	}

	if toks, err := framing.Tokenize(req.Msg.Current); err == nil {
		resp.Tokens = convertTokens(toks)
	}

	compiler := framing.NewCompiler()

	previous, err := compiler.CompileString(req.Msg.Previous)
	if err != nil {
		resp.Diagnostics = append(resp.Diagnostics, diagnose("previous", req.Msg.Previous, err))
	}

	current, err := compiler.CompileString(req.Msg.Current)
	if err != nil {
		resp.Diagnostics = append(resp.Diagnostics, diagnose("current", req.Msg.Current, err))
	}

	if previous != nil && current != nil {
		if m, found := framing.FindFramingIf(previous, current); found {
			span := m.Span()
			start, end := current.Locate(span)

			resp.Found = true
			resp.Match = &Location{
				StartToken: span.Start,
				EndToken:   span.End,
				StartByte:  start,
				EndByte:    end,
			}
		}
	}

	if h.logger != nil {
		h.logger.Printf("analyze: %d tokens, found=%t, %d diagnostics", len(resp.Tokens), resp.Found, len(resp.Diagnostics))
	}

	return connect.NewResponse(resp), nil
}

func convertTokens(toks []framing.Token) []Token {
	out := make([]Token, len(toks))
	for i, tok := range toks {
		out[i] = Token{
			Type:   tok.Typ.String(),
			Value:  tok.Value,
			Offset: tok.Offset,
		}
	}

	return out
}

func diagnose(input, src string, err error) Diagnostic {
	d := Diagnostic{
		Input:   input,
		Message: err.Error(),
	}

	switch e := err.(type) {
	case *framing.LexicalError:
		d.Kind = "lexical"
		d.Offset = e.Offset
	case *framing.SyntaxError:
		d.Kind = "syntax"
		d.Offset = len(src)
		if e.Token != nil {
			d.Offset = e.Token.Offset
		}
	case *framing.AnalysisError:
		d.Kind = "analysis"
		// Analysis only runs on input that tokenized.
		toks, _ := framing.Tokenize(src)
		d.Offset, _ = (&framing.Snapshot{Source: src, Tokens: toks}).Locate(e.Span)
	default:
		d.Kind = "internal"
	}

	return d
}

// JSONCodec implements custom JSON codec for the service messages
type JSONCodec struct{}

func (c *JSONCodec) Name() string {
	return "json"
}

func (c *JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// NewHandler creates the Connect RPC handler for Analyze and the path to
// mount it on.
func NewHandler(handler *FramingServiceHandler) (string, http.Handler) {
	return AnalyzeProcedure, connect.NewUnaryHandler(
		AnalyzeProcedure,
		handler.Analyze,
		connect.WithCodec(&JSONCodec{}),
	)
}

// New builds the HTTP server. h2c allows HTTP/2 without TLS.
func New(addr string, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(NewHandler(NewFramingServiceHandler(logger)))

	return &http.Server{
		Addr:     addr,
		Handler:  h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ErrorLog: logger,
	}
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, Connect-Protocol-Version")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
