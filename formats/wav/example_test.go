// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/samplechain/formats/wav"
)

func ExampleWriteFloat32() {
	var out bytes.Buffer
	if err := wav.WriteFloat32(&out, 48000, 2, []float32{0.5, -0.5, 0.25, -0.25}); err != nil {
		fmt.Println(err)
		return
	}

	buf, src, err := wav.Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(src, buf.Frames(), buf.Samples)
	// Output: 48000Hz/32bit/2ch 2 [0.5 -0.5 0.25 -0.25]
}
