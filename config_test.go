package ccgsrl

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.pipeline")
	defer teardown()
	//
	conf, err := LoadConfig(strings.NewReader(`
beam-ratio: 0.01
nbest: 10
root-categories: ['S[dcl]', 'NP']
`))
	if err != nil {
		t.Fatal(err)
	}
	if conf.BeamRatio != 0.01 || conf.NBest != 10 || len(conf.RootCategories) != 2 {
		t.Errorf("configuration not read: %+v", conf)
	}
	if conf.MaxChartSize != DefaultConfig().MaxChartSize {
		t.Errorf("expected default chart size, have %d", conf.MaxChartSize)
	}
	if conf, err = LoadConfig(strings.NewReader("")); err != nil || conf.NBest != 100 {
		t.Errorf("expected defaults for empty input, have %+v, %v", conf, err)
	}
	if _, err = LoadConfig(strings.NewReader("nbest: 0")); err == nil {
		t.Errorf("expected validation error for nbest 0")
	}
	if _, err = LoadConfig(strings.NewReader("nbest: [")); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}

func TestConfigCopies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.pipeline")
	defer teardown()
	//
	conf := DefaultConfig()
	relaxed := conf.WithBeam(0.0002)
	relaxed.RootCategories[0] = "N"
	if conf.BeamRatio != 0.0001 || conf.RootCategories[0] != `S[dcl]` {
		t.Errorf("WithBeam changed the original configuration")
	}
	if k := conf.WithNBest(5).NBest; k != 5 {
		t.Errorf("expected K=5, have %d", k)
	}
	if conf.WithBeam(2).Validate() == nil {
		t.Errorf("expected beam ratio > 1 to be invalid")
	}
}

func TestSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.pipeline")
	defer teardown()
	//
	s := SpanOf(2, 4)
	if s.Len() != 3 || !s.Contains(3) || s.Contains(5) {
		t.Errorf("unexpected span %v", s)
	}
}
