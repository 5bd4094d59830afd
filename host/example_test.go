// This file is part of intcode - https://github.com/aegamesi/intcode
//
// Copyright 2019 The intcode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host_test

import (
	"fmt"

	"github.com/aegamesi/intcode/host"
	"github.com/aegamesi/intcode/vm"
)

// Five amplifiers in a feedback loop.
func ExampleRing_Run() {
	p, err := vm.Parse("3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	if err != nil {
		panic(err)
	}
	r, err := host.NewRing(p, []vm.Cell{9, 8, 7, 6, 5})
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Run(0))

	// Output:
	// 139629729 <nil>
}

func ExampleMaxSignal() {
	p, _ := vm.Parse("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	best, order, err := host.MaxSignal(p, []vm.Cell{0, 1, 2, 3, 4}, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(best, order)

	// Output:
	// 43210 [4 3 2 1 0]
}

func ExampleDecodeASCII() {
	// prints its input followed by a large value.
	p, _ := vm.Parse("3,100,4,100,3,100,4,100,104,1000,99")
	out, err := host.RunOnce(p, host.EncodeASCII("ok")...)
	if err != nil {
		panic(err)
	}
	text, values := host.DecodeASCII(out)
	fmt.Println(text, values)

	// Output:
	// ok [1000]
}
