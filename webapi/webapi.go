/*
Package webapi exposes the parser as a JSON web service.

	GET  /health    liveness check
	POST /parse     {"words": [...], "k": 5}
	POST /reparse   {"words": [...], "constraints": [...], "redecode": false}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"

	"github.com/gonuts/commander"
	"github.com/gorilla/mux"
	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/app"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/constraint"
	"github.com/npillmayer/ccgsrl/pipeline"
	"github.com/npillmayer/ccgsrl/reparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ccgsrl.cli'.
func tracer() tracing.Trace {
	return tracing.Select("ccgsrl.cli")
}

// Server handles requests with a shared parser.
type Server struct {
	parser *pipeline.Parser
	router *mux.Router
}

// NewServer creates a server for a parser.
func NewServer(p *pipeline.Parser) *Server {
	s := &Server{parser: p, router: mux.NewRouter()}
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/parse", s.parse).Methods(http.MethodPost)
	s.router.HandleFunc("/reparse", s.reparse).Methods(http.MethodPost)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ParseRequest is the body of /parse and /reparse requests.
type ParseRequest struct {
	Words       []string          `json:"words"`
	K           int               `json:"k,omitempty"`
	Constraints []constraint.Spec `json:"constraints,omitempty"`
	Redecode    bool              `json:"redecode,omitempty"`
}

// Dependency is the JSON form of a resolved dependency.
type Dependency struct {
	Head     int    `json:"head"`
	Category string `json:"cat"`
	ArgNum   int    `json:"argnum"`
	Arg      int    `json:"arg"`
	Label    string `json:"label,omitempty"`
}

// Parse is the JSON form of a parse.
type Parse struct {
	Score      float64      `json:"score"`
	Categories []string     `json:"categories"`
	Deps       []Dependency `json:"deps"`
}

// ParseResponse is the body of responses.
type ParseResponse struct {
	Parses []Parse `json:"parses,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	res, err := s.parser.Parse(r.Context(), req.Words)
	if err != nil {
		writeError(w, err)
		return
	}
	k := req.K
	if k <= 0 || k > res.NBest.Len() {
		k = res.NBest.Len()
	}
	writeJSON(w, http.StatusOK, ParseResponse{Parses: toJSON(res.NBest.Parses[:k])})
}

func (s *Server) reparse(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	cs, err := constraint.FromSpecs(req.Constraints)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.parser.Parse(r.Context(), req.Words)
	if err != nil {
		writeError(w, err)
		return
	}
	var selected *nbest.Parse
	if req.Redecode {
		var list *nbest.NBestList
		list, err = reparse.Redecode(res.Forest, s.parser.Scorer(), cs, s.parser.Config().NBest)
		if err == nil {
			selected = list.Best()
		}
	} else {
		selected, err = reparse.Reparse(res.NBest, cs)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{Parses: toJSON([]*nbest.Parse{selected})})
}

func decode(w http.ResponseWriter, r *http.Request) (ParseRequest, bool) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ParseResponse{Error: err.Error()})
		return req, false
	}
	if len(req.Words) == 0 {
		writeJSON(w, http.StatusBadRequest, ParseResponse{Error: "no words"})
		return req, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ccgsrl.ErrMalformedConstraint):
		status = http.StatusBadRequest
	case ccgsrl.IsParseFailure(err), errors.Is(err, ccgsrl.ErrNoParseAvailable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	tracer().Infof("request failed: %v", err)
	writeJSON(w, status, ParseResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		tracer().Errorf("writing response: %v", err)
	}
}

func toJSON(parses []*nbest.Parse) []Parse {
	out := make([]Parse, len(parses))
	for i, p := range parses {
		out[i] = Parse{Score: p.Score, Categories: make([]string, len(p.Categories))}
		for j, c := range p.Categories {
			if c != nil {
				out[i].Categories[j] = c.String()
			}
		}
		for _, d := range p.Deps {
			out[i].Deps = append(out[i].Deps, Dependency{Head: d.Head, Category: d.Category.String(),
				ArgNum: d.ArgNum, Arg: d.Arg, Label: string(d.Label)})
		}
	}
	return out
}

// --- Command ---------------------------------------------------------------

var addr string

// AllCommands returns the commands of the web service.
func AllCommands() *commander.Command {
	return &commander.Command{
		UsageLine: "ccgsrl serve",
		Short:     "run the parser as a web service",
		Subcommands: []*commander.Command{
			ServeCmd(),
		},
	}
}

// ServeCmd creates the serve command.
func ServeCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runServe,
		UsageLine: "serve <flags>",
		Short:     "run the parser as a JSON web service",
		Long: `
run the parser as a JSON web service

	$ ccgsrl serve -lex <lexicon.yaml> [-addr :8000]
`,
		Flag: *flag.NewFlagSet("serve", flag.ExitOnError),
	}
	app.CommonFlags(cmd)
	cmd.Flag.StringVar(&addr, "addr", ":8000", "Address to listen on")
	return cmd
}

func runServe(cmd *commander.Command, args []string) error {
	app.InitTracing(app.TraceLevel())
	conf, err := app.LoadConfig()
	if err != nil {
		return err
	}
	lex, err := app.LoadLexicon()
	if err != nil {
		return err
	}
	if lex == nil {
		return errors.New("the web service needs a lexicon: use -lex")
	}
	scorer, err := app.LoadScorer(conf)
	if err != nil {
		return err
	}
	p, err := pipeline.NewParser(lex, conf, pipeline.WithScorer(scorer), pipeline.WithCache())
	if err != nil {
		return err
	}
	tracer().Infof("listening on %s", addr)
	return http.ListenAndServe(addr, NewServer(p))
}
