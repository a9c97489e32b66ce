package mpbg

import (
	"github.com/coregx/streammatch/bg"
	"github.com/coregx/streammatch/kmprt"
)

// NewBG returns an mpbg.Engine backed by one bg.Engine per dictionary
// pattern, built under cfg.
func NewBG(cfg bg.Config) *Engine {
	return New(func(pattern []byte) (singleEngine, error) {
		return bg.New(pattern, cfg)
	})
}

// NewKMPRT returns an mpbg.Engine backed by one plain real-time KMP engine
// per dictionary pattern — a baseline without BG's logarithmic ladder, for
// comparing accuracy and performance counters against the BG-composed
// engine on the same dictionary and streams.
func NewKMPRT() *Engine {
	return New(func(pattern []byte) (singleEngine, error) {
		return kmprt.New(pattern), nil
	})
}
