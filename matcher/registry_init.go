package matcher

import (
	"github.com/coregx/streammatch/ahocorasick"
	"github.com/coregx/streammatch/bg"
	"github.com/coregx/streammatch/mpbg"
)

func init() {
	register(AlgorithmAC, "aho-corasick", true, func() Matcher {
		return ahocorasick.NewLowMem()
	})
	register(AlgorithmMPBG, "mp-bg", false, func() Matcher {
		return mpbg.NewBG(bg.DefaultConfig())
	})
	register(AlgorithmKMPRT, "mp-kmp-rt", false, func() Matcher {
		return mpbg.NewKMPRT()
	})
}
