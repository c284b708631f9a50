// SPDX-License-Identifier: EPL-2.0

package samplechain_test

import (
	"fmt"

	"github.com/ik5/samplechain"
	"github.com/ik5/samplechain/config"
)

// ExamplePipeline_Plan groups a small kit. The hi-hat group is larger than
// the cap of two and is split.
func ExamplePipeline_Plan() {
	cfg := config.Default()
	cfg.MaxSamplesPerChain = 2

	p, err := samplechain.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	plan := p.Plan([]string{
		"kit/hats/OpenHH Dusty.wav",
		"kit/hats/ClosedHH Dusty 2.wav",
		"kit/hats/ClosedHH Dusty 1.wav",
		"kit/kick/k1.wav",
	})
	for _, c := range plan.Chains {
		fmt.Println(c.Name, c.Paths())
	}
	// Output:
	// hats_1 [kit/hats/ClosedHH Dusty 1.wav kit/hats/ClosedHH Dusty 2.wav]
	// hats_2 [kit/hats/OpenHH Dusty.wav]
	// kit/kick [kit/kick/k1.wav]
}
