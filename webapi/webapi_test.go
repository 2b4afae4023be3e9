package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/pipeline"
	"github.com/npillmayer/ccgsrl/supertag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const lexicon = `
words:
  john: {NP: 0}
  saw: {'(S[dcl]\NP)/NP': 0}
  the: {'NP[nb]/N': 0}
  man: {N: 0}
  with: {'(NP\NP)/NP': 0, '((S\NP)\(S\NP))/NP': -0.5}
  telescopes: {NP: 0}
`

func testServer(t *testing.T) *Server {
	lex, err := supertag.LoadLexicon(strings.NewReader(lexicon))
	if err != nil {
		t.Fatal(err)
	}
	p, err := pipeline.NewParser(lex, ccgsrl.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(p)
}

func post(s *Server, path, body string) (*httptest.ResponseRecorder, ParseResponse) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var resp ParseResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	return rec, resp
}

func TestHealth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, have %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, have %d", rec.Code)
	}
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	s := testServer(t)
	rec, resp := post(s, "/parse", `{"words": ["John", "saw", "the", "man", "with", "telescopes"], "k": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, have %d: %s", rec.Code, resp.Error)
	}
	if len(resp.Parses) != 2 {
		t.Fatalf("expected 2 parses, have %d", len(resp.Parses))
	}
	if resp.Parses[0].Score < resp.Parses[1].Score {
		t.Errorf("expected parses ordered by score")
	}
	if len(resp.Parses[0].Categories) != 6 {
		t.Errorf("expected one category per word, have %v", resp.Parses[0].Categories)
	}
}

func TestReparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	s := testServer(t)
	for _, redecode := range []string{"false", "true"} {
		body := `{"words": ["John", "saw", "the", "man", "with", "telescopes"],
			"constraints": [{"kind": "attach", "head": 4, "arg": 1, "positive": true, "weight": 5}],
			"redecode": ` + redecode + `}`
		rec, resp := post(s, "/reparse", body)
		if rec.Code != http.StatusOK || len(resp.Parses) != 1 {
			t.Fatalf("redecode=%s: expected one parse, have status %d: %s", redecode, rec.Code, resp.Error)
		}
		found := false
		for _, d := range resp.Parses[0].Deps {
			if (d.Head == 4 && d.Arg == 1) || (d.Head == 1 && d.Arg == 4) {
				found = true
			}
		}
		if !found {
			t.Errorf("redecode=%s: expected verb attachment, have %v", redecode, resp.Parses[0].Deps)
		}
	}
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.cli")
	defer teardown()
	//
	s := testServer(t)
	for _, c := range []struct {
		path, body string
		status     int
	}{
		{"/parse", `{"words": [`, http.StatusBadRequest},
		{"/parse", `{"words": []}`, http.StatusBadRequest},
		{"/parse", `{"words": ["with"]}`, http.StatusUnprocessableEntity},
		{"/reparse", `{"words": ["John", "saw", "telescopes"],
			"constraints": [{"kind": "link", "head": 0, "arg": 1}]}`, http.StatusBadRequest},
		{"/reparse", `{"words": ["John", "saw", "telescopes"],
			"constraints": [{"kind": "attach", "head": 0, "arg": 7, "positive": true, "weight": 1}]}`,
			http.StatusBadRequest},
	} {
		rec, resp := post(s, c.path, c.body)
		if rec.Code != c.status {
			t.Errorf("%s %s: expected status %d, have %d (%s)", c.path, c.body, c.status, rec.Code, resp.Error)
		}
	}
}
